package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/contract --output domain/contract --outpkg contractmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name QueryRepository --dir ../domain/reportcard --output domain/reportcard --outpkg reportcardmock --filename query_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name ListRepository --dir ../domain/footplayer --output domain/footplayer --outpkg footplayermock --filename list_repository_mock.go
