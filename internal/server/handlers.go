package server

import (
	"bytes"
	"errors"
	"net/http"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/lingopipe/lingopipe"
	"github.com/lingopipe/lingopipe/cache"
)

type translateRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type translateResponse struct {
	Text         string  `json:"text"`
	Source       string  `json:"source"`
	Target       string  `json:"target"`
	DetectedLang string  `json:"detected_lang,omitempty"`
	Confidence   float64 `json:"confidence,omitempty"`
	Provider     string  `json:"provider"`
	Cached       bool    `json:"cached"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleTranslate(c *fiber.Ctx) error {
	var req translateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	result, err := s.svc.Translate(c.UserContext(), lingopipe.Request{
		Text:   req.Text,
		Source: req.Source,
		Target: req.Target,
	})
	if err != nil {
		return apiError(c, err)
	}

	return c.JSON(toTranslateResponse(result))
}

type batchRequest struct {
	Texts  []string `json:"texts"`
	Source string   `json:"source"`
	Target string   `json:"target"`
}

type batchItemResponse struct {
	Text   string             `json:"text"`
	Result *translateResponse `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (s *Server) handleTranslateBatch(c *fiber.Ctx) error {
	var req batchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}
	if len(req.Texts) == 0 {
		return badRequest(c, "texts is empty")
	}

	items := s.svc.TranslateBatch(c.UserContext(), req.Texts, req.Source, req.Target)

	out := make([]batchItemResponse, len(items))
	for i, item := range items {
		out[i].Text = item.Text
		if item.Err != nil {
			out[i].Error = item.Err.Error()
			continue
		}
		resp := toTranslateResponse(item.Result)
		out[i].Result = &resp
	}

	return c.JSON(fiber.Map{"items": out})
}

type detectRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleDetect(c *fiber.Ctx) error {
	var req detectRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid JSON body")
	}

	detection, err := s.svc.Detect(c.UserContext(), req.Text)
	if err != nil {
		return apiError(c, err)
	}

	return c.JSON(fiber.Map{
		"lang":       detection.Lang,
		"name":       lingopipe.LanguageName(detection.Lang),
		"confidence": detection.Confidence,
		"provider":   detection.Provider,
	})
}

func (s *Server) handleSpeak(c *fiber.Ctx) error {
	if s.synth == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "speech synthesis is disabled"})
	}

	text := c.Query("text")
	lang := c.Query("lang", "en")
	// Over-long text is truncated by the synthesizer, not rejected.
	if err := lingopipe.ValidateText(text, lingopipe.MaxTextLen); err != nil {
		return apiError(c, err)
	}

	audio, err := s.synth.Synthesize(c.UserContext(), text, lang)
	if err != nil {
		return apiError(c, err)
	}

	c.Set(fiber.HeaderContentType, audio.ContentType)
	c.Set(fiber.HeaderCacheControl, "public, max-age=86400")
	return c.Send(audio.Data)
}

type languageEntry struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	RTL     bool   `json:"rtl,omitempty"`
	Speech  bool   `json:"speech"`
	Popular bool   `json:"popular,omitempty"`
}

func (s *Server) handleLanguages(c *fiber.Ctx) error {
	popular := make(map[string]bool, len(lingopipe.PopularLanguages))
	for _, code := range lingopipe.PopularLanguages {
		popular[code] = true
	}

	entries := make([]languageEntry, 0, len(lingopipe.Languages))
	for code, name := range lingopipe.Languages {
		entries = append(entries, languageEntry{
			Code:    code,
			Name:    name,
			RTL:     lingopipe.IsRTL(code),
			Speech:  lingopipe.IsSpeechSupported(code),
			Popular: popular[code],
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	return c.JSON(fiber.Map{
		"auto": fiber.Map{
			"code": lingopipe.AutoDetect,
			"name": lingopipe.LanguageName(lingopipe.AutoDetect),
		},
		"languages": entries,
		"defaults": fiber.Map{
			"source": s.cfg.Defaults.Source,
			"target": s.cfg.Defaults.Target,
		},
	})
}

func (s *Server) handleHistory(c *fiber.Ctx) error {
	h := s.svc.History()
	if h == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "history is disabled"})
	}
	return c.JSON(fiber.Map{"entries": h.Entries()})
}

func (s *Server) handleHistoryClear(c *fiber.Ctx) error {
	h := s.svc.History()
	if h == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "history is disabled"})
	}
	h.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleHistoryExport(c *fiber.Ctx) error {
	h := s.svc.History()
	if h == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "history is disabled"})
	}

	var buf bytes.Buffer
	if err := h.Export(&buf); err != nil {
		return apiError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="history.json"`)
	return c.Send(buf.Bytes())
}

func (s *Server) handleCacheStats(c *fiber.Ctx) error {
	cc := s.svc.Cache()
	if cc == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "cache is disabled"})
	}

	reporter, ok := cc.(cache.StatsReporter)
	if !ok {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "cache statistics unavailable"})
	}
	return c.JSON(reporter.Stats())
}

func (s *Server) handleCacheClear(c *fiber.Ctx) error {
	cc := s.svc.Cache()
	if cc == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "cache is disabled"})
	}

	clearable, ok := cc.(interface{ Clear() })
	if !ok {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "cache clearing unavailable"})
	}
	clearable.Clear()
	return c.SendStatus(http.StatusNoContent)
}

func (s *Server) handleCacheExport(c *fiber.Ctx) error {
	cc := s.svc.Cache()
	if cc == nil {
		return c.Status(http.StatusNotImplemented).JSON(errorResponse{Error: "cache is disabled"})
	}

	var buf bytes.Buffer
	err := cache.NewExporter(cc).Export(&buf, map[string]string{
		"app":     lingopipe.Name,
		"version": lingopipe.Version,
	})
	if err != nil {
		return apiError(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cache.json"`)
	return c.Send(buf.Bytes())
}

func toTranslateResponse(r *lingopipe.Result) translateResponse {
	return translateResponse{
		Text:         r.Text,
		Source:       r.Source,
		Target:       r.Target,
		DetectedLang: r.DetectedLang,
		Confidence:   r.Confidence,
		Provider:     r.Provider,
		Cached:       r.Cached,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: msg})
}

// apiError maps engine errors onto HTTP statuses: rejected input is the
// client's fault, backend failures are an upstream problem.
func apiError(c *fiber.Ctx, err error) error {
	var validationErr *lingopipe.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusBadRequest).JSON(errorResponse{Error: err.Error()})
	}

	var detectionErr *lingopipe.DetectionError
	if errors.As(err, &detectionErr) {
		return c.Status(http.StatusUnprocessableEntity).JSON(errorResponse{Error: err.Error()})
	}

	var providerErr *lingopipe.ProviderError
	var synthErr *lingopipe.SynthesisError
	if errors.As(err, &providerErr) || errors.As(err, &synthErr) {
		return c.Status(http.StatusBadGateway).JSON(errorResponse{Error: err.Error()})
	}

	return c.Status(http.StatusInternalServerError).JSON(errorResponse{Error: err.Error()})
}
