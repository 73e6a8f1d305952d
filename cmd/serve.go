package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/gorilla/mux"
	"github.com/jsphweid/pixelroll/constants"
	"github.com/jsphweid/pixelroll/convert"
	"github.com/jsphweid/pixelroll/db"
	"github.com/jsphweid/pixelroll/file"
	"github.com/jsphweid/pixelroll/midi"
	"github.com/jsphweid/pixelroll/model"
	"github.com/jsphweid/pixelroll/preview"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const maxUploadBytes = 32 << 20

var (
	serveAddr     string
	serveDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.GetAddr(), "listen address")
	serveCmd.Flags().DurationVar(&serveDebounce, "debounce", 300*time.Millisecond, "wait before restarting a conversion after an option change")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the conversion API",
	RunE: func(cmd *cobra.Command, args []string) error {
		var records *db.Store
		if endpoint := constants.GetDynamoEndpoint(); endpoint != "" {
			var err error
			records, err = db.NewStore(endpoint, constants.GetDynamoTable())
			if err != nil {
				return err
			}
		}
		return serve(cmd.Context(), serveAddr, NewHandler(records, serveDebounce))
	},
}

func serve(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{Addr: addr, Handler: h}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logrus.WithError(err).Warn("shutdown did not finish cleanly")
		}
	}()
	logrus.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

type server struct {
	sessions *sessionStore
	records  *db.Store
}

// NewHandler builds the API router. records may be nil.
func NewHandler(records *db.Store, debounceWait time.Duration) http.Handler {
	s := &server{sessions: newSessionStore(records, debounceWait), records: records}

	router := mux.NewRouter().StrictSlash(true)
	router.Use(logRequests)
	router.HandleFunc("/convert", HandleConvert).Methods("POST")
	router.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	router.HandleFunc("/sessions/{id}", s.handleStatus).Methods("GET")
	router.HandleFunc("/sessions/{id}/options", s.handleOptions).Methods("PUT")
	router.HandleFunc("/sessions/{id}/preview.png", s.handlePreview).Methods("GET")
	router.HandleFunc("/sessions/{id}/midi", s.handleMidi).Methods("GET")
	router.HandleFunc("/conversions", s.handleConversions).Methods("GET")

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut},
	})
	return gzhttp.GzipHandler(c.Handler(router))
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logrus.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"elapsed": time.Since(start),
		}).Info("request")
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

func writeBody(w http.ResponseWriter, contentType string, body io.Reader) {
	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, body); err != nil {
		logrus.WithError(err).Warn("could not write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var decodeErr *file.DecodeError
	switch {
	case errors.Is(err, convert.ErrConfig), errors.As(err, &decodeErr):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		logrus.WithError(err).Error("request failed")
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// readUpload pulls the image and the optional JSON options out of a
// multipart form.
func readUpload(r *http.Request) (string, *image.NRGBA, model.Options, error) {
	opts := model.DefaultOptions()
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, opts, &file.DecodeError{Source: "request", Err: err}
	}
	f, header, err := r.FormFile("image")
	if err != nil {
		return "", nil, opts, &file.DecodeError{Source: "image", Err: err}
	}
	defer f.Close()

	img, _, err := file.Decode(header.Filename, f)
	if err != nil {
		return "", nil, opts, err
	}
	if raw := r.FormValue("options"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &opts); err != nil {
			return "", nil, opts, &file.DecodeError{Source: "options", Err: err}
		}
	}
	return header.Filename, img, opts, nil
}

func HandleConvert(w http.ResponseWriter, r *http.Request) {
	_, img, opts, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cfg, err := convert.ConfigFromOptions(opts, img)
	if err != nil {
		writeError(w, err)
		return
	}
	p, err := convert.New(cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := p.Run(r.Context(), img, nil)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := midi.Write(&buf, midi.HeaderFromOptions(opts), cfg.Palette.Colors(), res.Buffers, nil); err != nil {
		writeError(w, err)
		return
	}
	writeBody(w, "audio/midi", &buf)
}

func (s *server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	source, img, opts, err := readUpload(r)
	if err != nil {
		writeError(w, err)
		return
	}
	sess, err := s.sessions.create(source, img, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.SessionCreated{Id: sess.id})
}

func (s *server) session(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, ok := s.sessions.get(mux.Vars(r)["id"])
	if !ok {
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no such session"})
	}
	return sess, ok
}

func (s *server) ready(w http.ResponseWriter, r *http.Request) (*convert.Result, midi.Header, bool) {
	sess, ok := s.session(w, r)
	if !ok {
		return nil, midi.Header{}, false
	}
	res, header := sess.published()
	if res == nil {
		writeJSON(w, http.StatusConflict, model.ErrorResponse{Error: "conversion not ready"})
		return nil, midi.Header{}, false
	}
	return res, header, true
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.status())
}

func (s *server) handleOptions(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}
	opts := model.DefaultOptions()
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	if err := opts.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
		return
	}
	s.sessions.update(sess, opts)
	w.WriteHeader(http.StatusAccepted)
}

func (s *server) handlePreview(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.ready(w, r)
	if !ok {
		return
	}
	img, err := preview.Interactive(r.Context(), res.Timeline(), nil)
	if err != nil {
		writeError(w, err)
		return
	}
	var buf bytes.Buffer
	if err := gg.NewContextForImage(img).EncodePNG(&buf); err != nil {
		writeError(w, err)
		return
	}
	writeBody(w, "image/png", &buf)
}

func (s *server) handleMidi(w http.ResponseWriter, r *http.Request) {
	res, header, ok := s.ready(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := midi.Write(&buf, header, res.Palette.Colors(), res.Buffers, nil); err != nil {
		writeError(w, err)
		return
	}
	writeBody(w, "audio/midi", &buf)
}

// handleConversions returns the stored records for a comma separated list
// of session ids.
func (s *server) handleConversions(w http.ResponseWriter, r *http.Request) {
	if s.records == nil {
		writeJSON(w, http.StatusNotImplemented, model.ErrorResponse{Error: "conversion records are not configured"})
		return
	}
	// BatchGetItem rejects duplicate keys
	var ids []string
	seen := make(map[string]bool)
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	records, err := s.records.GetConversions(ids)
	if err != nil {
		if errors.Is(err, db.ErrTooManyIds) {
			writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: err.Error()})
			return
		}
		writeError(w, err)
		return
	}
	res := make([]db.ConversionRecord, 0, len(records))
	for _, id := range ids {
		if rec, ok := records[id]; ok {
			res = append(res, rec)
		}
	}
	writeJSON(w, http.StatusOK, res)
}
