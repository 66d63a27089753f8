package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/fieldops/internal/bus"
	apperrors "github.com/umalmyha/fieldops/internal/errors"
	"github.com/umalmyha/fieldops/internal/model"
	"github.com/umalmyha/fieldops/internal/store"
	"github.com/vmihailenco/msgpack/v5"
)

// MIMEApplicationMsgpack is media type of msgpack encoded responses
const MIMEApplicationMsgpack = "application/msgpack"

// Conditional request headers
const (
	HeaderETag        = "ETag"
	HeaderIfNoneMatch = "If-None-Match"
)

type identifier struct {
	ID string `json:"id" validate:"required,uuid"`
}

type deleted struct {
	Warning string `json:"warning"`
}

// SyncStore serializes access to store shared by concurrent requests
type SyncStore struct {
	mu    sync.Mutex
	store *store.Store
}

// NewSyncStore wraps s
func NewSyncStore(s *store.Store) *SyncStore {
	return &SyncStore{store: s}
}

// Do runs fn holding exclusive access to store
func (g *SyncStore) Do(fn func(*store.Store) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.store)
}

func validateID(c echo.Context) (string, error) {
	id := c.Param("id")
	if err := c.Validate(&identifier{ID: id}); err != nil {
		return "", err
	}
	return id, nil
}

// etag builds entity tag from change versions of keys snapshot depends on
func etag(s *store.Store, name string, keys ...bus.DataKey) string {
	versions := make([]string, 0, len(keys))
	for _, key := range keys {
		versions = append(versions, fmt.Sprintf("%d", s.Version(key)))
	}
	return fmt.Sprintf(`"%s-%s"`, name, strings.Join(versions, "."))
}

// snapshot responds with v unless client already holds the same version
func snapshot(c echo.Context, tag string, v any) error {
	c.Response().Header().Set(HeaderETag, tag)
	if match := c.Request().Header.Get(HeaderIfNoneMatch); match != "" && match == tag {
		return c.NoContent(http.StatusNotModified)
	}
	return respond(c, http.StatusOK, v)
}

// respond encodes v as msgpack when client accepts it, as JSON otherwise
func respond(c echo.Context, status int, v any) error {
	if !acceptsMsgpack(c.Request()) {
		return c.JSON(status, v)
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode response - %v", err))
	}
	return c.Blob(status, MIMEApplicationMsgpack, buf.Bytes())
}

func acceptsMsgpack(r *http.Request) bool {
	accept := r.Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, MIMEApplicationMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

func bindBody(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// ErrorHandler renders store errors as JSON with matching status codes and logs failed requests
func ErrorHandler(e *echo.Echo, log logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		req := c.Request()
		entry := log.WithFields(logrus.Fields{"method": req.Method, "path": req.URL.Path})

		var vErr *apperrors.ValidationErr
		var nfErr *apperrors.EntryNotFoundErr
		switch {
		case errors.As(err, &vErr):
			entry.WithField("status", http.StatusBadRequest).Info(err.Error())
			writeErr(entry, c.JSON(http.StatusBadRequest, vErr))
		case errors.As(err, &nfErr):
			entry.WithField("status", http.StatusNotFound).Info(err.Error())
			writeErr(entry, c.JSON(http.StatusNotFound, nfErr))
		default:
			status := http.StatusInternalServerError
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}

			if status >= http.StatusInternalServerError {
				entry.WithField("status", status).Error(err.Error())
			} else {
				entry.WithField("status", status).Info(err.Error())
			}
			e.DefaultHTTPErrorHandler(err, c)
		}
	}
}

func writeErr(log logrus.FieldLogger, err error) {
	if err != nil {
		log.Errorf("failed to write error response - %v", err)
	}
}

func deleteResponse(c echo.Context, res model.DeleteResult) error {
	if res.Warning == "" {
		return c.NoContent(http.StatusNoContent)
	}
	return respond(c, http.StatusOK, &deleted{Warning: res.Warning})
}
