package handler

import (
	"net/http"
	"time"

	"github.com/buckii/bi-forecast-sub000/pkg/log"
)

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte(time.Now().String())); err != nil {
			log.L.WithError(err).Warn("error responding to healthcheck")
		}
	})
}
