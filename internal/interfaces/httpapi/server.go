package httpapi

import (
	"net/http"

	"github.com/riskibarqy/footmate/internal/platform/logging"
)

// NewRouter registers every route and wraps the mux with, from the outside
// in, tracing, access logging, CORS and panic recovery.
func NewRouter(
	handler *Handler,
	verifier TokenVerifier,
	logger *logging.Logger,
	swaggerEnabled bool,
	corsAllowedOrigins []string,
) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	for _, register := range []func(*http.ServeMux, *Handler, TokenVerifier){
		registerAccountRoutes,
		registerMemberRoutes,
		registerMasterRoutes,
		registerAchievementRoutes,
		registerContractRoutes,
		registerFootplayerRoutes,
		registerReportCardRoutes,
	} {
		register(mux, handler, verifier)
	}
	registerSystemRoutes(mux, handler, swaggerEnabled)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = CORS(corsAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}
