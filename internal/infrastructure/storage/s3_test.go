package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutObject) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		raw, _ := io.ReadAll(params.Body)
		f.body = string(raw)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Upload(t *testing.T) {
	t.Parallel()

	fake := &fakePutObject{}
	store := newS3Store(fake, "media", "https://cdn.example.com/")

	url, err := store.Upload(context.Background(), "/achievements/u-1/a-1.png", strings.NewReader("png"), 3, "image/png")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example.com/achievements/u-1/a-1.png" {
		t.Fatalf("unexpected url: %s", url)
	}
	if aws.ToString(fake.input.Bucket) != "media" || aws.ToString(fake.input.Key) != "achievements/u-1/a-1.png" {
		t.Fatalf("unexpected target: %s/%s", aws.ToString(fake.input.Bucket), aws.ToString(fake.input.Key))
	}
	if aws.ToString(fake.input.ContentType) != "image/png" || aws.ToInt64(fake.input.ContentLength) != 3 {
		t.Fatalf("unexpected metadata: %+v", fake.input)
	}
	if fake.body != "png" {
		t.Fatalf("unexpected body: %q", fake.body)
	}
}

func TestS3Store_UploadErrors(t *testing.T) {
	t.Parallel()

	store := newS3Store(&fakePutObject{}, "media", "https://cdn.example.com")
	if _, err := store.Upload(context.Background(), " ", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatalf("expected error for empty key")
	}

	failing := newS3Store(&fakePutObject{err: errors.New("boom")}, "media", "https://cdn.example.com")
	if _, err := failing.Upload(context.Background(), "k", strings.NewReader("x"), 1, ""); err == nil {
		t.Fatalf("expected put error to surface")
	}
}
