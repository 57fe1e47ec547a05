package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"
)

const defaultListLimit = 100

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, HealthResponse{
		Status:  "healthy",
		Files:   len(s.catalog.Files()),
		Exports: s.exports != nil,
	})
}

// handleFiles godoc
//
//	@Summary		List archive entries
//	@Tags			archive
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/files [get]
//	@Security		ApiKeyAuth
func (s *Server) handleFiles(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, s.catalog.Files())
}

// handleKinds godoc
//
//	@Summary		List decodable kinds
//	@Tags			bins
//	@Produce		json
//	@Success		200	{object}	APIResponse
//	@Router			/kinds [get]
//	@Security		ApiKeyAuth
func (s *Server) handleKinds(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, s.catalog.Kinds())
}

// handleDecode godoc
//
//	@Summary		Decode a bin file
//	@Description	Decode the archive entry for a kind. Records that fail are reported, not fatal.
//	@Tags			bins
//	@Produce		json
//	@Param			kind	path		string	true	"Kind"
//	@Param			resolve	query		bool	false	"Resolve display strings"
//	@Success		200		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Router			/bins/{kind} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	resolve, err := boolParam(r, "resolve")
	if err != nil {
		sendError(w, "Invalid resolve parameter", http.StatusBadRequest)
		return
	}

	decoded, err := s.catalog.Decode(kind, resolve)
	if err != nil {
		s.logger.Warn().Err(err).Str("kind", kind).Msg("decode failed")
		sendError(w, err.Error(), statusFor(err))
		return
	}

	sendSuccess(w, DecodeResponse{
		Kind:     decoded.Kind,
		Entry:    s.entryFor(kind),
		Records:  decoded.Records,
		Failures: decoded.Failures,
		Warnings: decoded.Warnings,
	})
}

func (s *Server) entryFor(kind string) string {
	for _, k := range s.catalog.Kinds() {
		if k.Name == kind {
			return k.Entry
		}
	}
	return ""
}

// handleMessage godoc
//
//	@Summary		Resolve a message key
//	@Tags			messages
//	@Produce		json
//	@Param			key	path		string	true	"Key"
//	@Success		200	{object}	APIResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/messages/{key} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	entry, err := s.catalog.Message(key)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, entry)
}

// handleListExports godoc
//
//	@Summary		List stored exports
//	@Tags			exports
//	@Produce		json
//	@Param			kind	path		string	true	"Kind"
//	@Param			limit	query		int		false	"Maximum results"
//	@Success		200		{object}	APIResponse
//	@Router			/exports/{kind} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	if !s.requireExports(w) {
		return
	}

	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = n
	}

	records, err := s.exports.List(chi.URLParam(r, "kind"), limit)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	out := make([]ExportRecord, 0, len(records))
	for _, rec := range records {
		out = append(out, ExportRecord{ID: rec.ID.String(), Kind: rec.Kind, Data: rec.Data})
	}
	sendSuccess(w, out)
}

// handleCreateExport godoc
//
//	@Summary		Decode a kind and store each record
//	@Tags			exports
//	@Produce		json
//	@Param			kind	path		string	true	"Kind"
//	@Param			resolve	query		bool	false	"Resolve display strings"
//	@Success		201		{object}	APIResponse
//	@Router			/exports/{kind} [post]
//	@Security		ApiKeyAuth
func (s *Server) handleCreateExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireExports(w) {
		return
	}

	kind := chi.URLParam(r, "kind")
	resolve, err := boolParam(r, "resolve")
	if err != nil {
		sendError(w, "Invalid resolve parameter", http.StatusBadRequest)
		return
	}

	decoded, err := s.catalog.Decode(kind, resolve)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}

	items, err := decoded.MarshalRecords()
	if err != nil {
		sendError(w, "Failed to encode export", http.StatusInternalServerError)
		return
	}

	ids, err := s.exports.CreateBatch(kind, items)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("failed to store export")
		sendError(w, "Failed to store export", http.StatusInternalServerError)
		return
	}

	resp := ExportResponse{Kind: kind, IDs: make([]string, len(ids))}
	for i, id := range ids {
		resp.IDs[i] = id.String()
	}
	sendStatus(w, resp, http.StatusCreated)
}

// handleGetExport godoc
//
//	@Summary		Read a stored export
//	@Tags			exports
//	@Produce		json
//	@Param			kind	path		string	true	"Kind"
//	@Param			id		path		string	true	"Export id"
//	@Success		200		{object}	APIResponse
//	@Failure		404		{object}	APIResponse
//	@Router			/exports/{kind}/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleGetExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireExports(w) {
		return
	}

	kind := chi.URLParam(r, "kind")
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid export id", http.StatusBadRequest)
		return
	}

	data, err := s.exports.Read(kind, id)
	if err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, ExportRecord{ID: id.String(), Kind: kind, Data: data})
}

// handleDeleteExport godoc
//
//	@Summary		Delete a stored export
//	@Tags			exports
//	@Produce		json
//	@Param			kind	path		string	true	"Kind"
//	@Param			id		path		string	true	"Export id"
//	@Success		200		{object}	APIResponse
//	@Router			/exports/{kind}/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleDeleteExport(w http.ResponseWriter, r *http.Request) {
	if !s.requireExports(w) {
		return
	}

	kind := chi.URLParam(r, "kind")
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid export id", http.StatusBadRequest)
		return
	}

	if err := s.exports.Delete(kind, id); err != nil {
		sendError(w, err.Error(), statusFor(err))
		return
	}
	sendSuccess(w, map[string]string{"status": "deleted"})
}

func (s *Server) requireExports(w http.ResponseWriter) bool {
	if s.exports == nil {
		sendError(w, "Export store not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func boolParam(r *http.Request, name string) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}
