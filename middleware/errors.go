package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/heatwave/models"
)

// Messages returned in error envelopes.
const (
	MsgNotFound    = "Endpoint not found"
	MsgRateLimited = "Too many requests from this IP, please try again later."
	MsgInternal    = "Internal server error"
)

// ErrorHandler renders every error as an error envelope. Unknown routes read
// "Endpoint not found"; 5xx details are logged but not sent.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		msg := MsgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			msg = fmt.Sprint(he.Message)
		}

		switch {
		case code == http.StatusNotFound:
			msg = MsgNotFound
		case code >= http.StatusInternalServerError:
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
			)
			msg = MsgInternal
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(code)
		} else {
			werr = c.JSON(code, models.ErrorEnvelope{Status: models.StatusError, Error: msg})
		}
		if werr != nil {
			log.Warn("writing error response", zap.Error(werr))
		}
	}
}
