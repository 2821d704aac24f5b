package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jsphweid/musicmodel/constants"
	"github.com/jsphweid/musicmodel/model"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxRequestBytes = 1 << 20

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves POST /lengths",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// HandleLengths merges the rhythms in the request body and replies with
// their sounding spans.
func HandleLengths(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var input model.LengthsRequestBody
	if err := json.Unmarshal(reqBody, &input); err != nil {
		writeError(w, http.StatusBadRequest, "could not unmarshal request body: "+err.Error())
		return
	}
	if len(input.Rhythms) == 0 {
		writeError(w, http.StatusBadRequest, "rhythms must not be empty")
		return
	}

	var src string
	for _, rhythm := range input.Rhythms {
		src += rhythm + "\n"
	}
	spans, err := Spans(src, input.Strict || strictTies())
	if err != nil {
		slog.Debug("rejected lengths request", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res := model.LengthsResponse{
		Lengths: make([]string, 0, len(spans)),
		Spans:   make([]model.Span, 0, len(spans)),
	}
	for _, span := range spans {
		res.Lengths = append(res.Lengths, span.Duration.String())
		s := model.Span{Offset: span.Offset.String(), Duration: span.Duration.String()}
		if p, ok := span.Instance.Value(); ok {
			s.Pitch = p.String()
		}
		res.Spans = append(res.Spans, s)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: msg})
}

// NewHandler returns the router wrapped with CORS for the allowed origins.
func NewHandler(allowedOrigins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/lengths", HandleLengths).Methods("POST")
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(router)
}

func serve() error {
	port := constants.DefaultPort
	origins := []string{"*"}
	if cfg != nil {
		port = cfg.Server.Port
		origins = cfg.Server.AllowedOrigins
	}

	addr := fmt.Sprintf(":%d", port)
	slog.Info("serving", "addr", addr, "allowed_origins", origins)
	err := http.ListenAndServe(addr, NewHandler(origins))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
