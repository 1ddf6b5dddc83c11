package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/citycat/adoption-engine/internal/access"
	"github.com/citycat/adoption-engine/internal/domain"
	"github.com/citycat/adoption-engine/internal/heart"
	"github.com/citycat/adoption-engine/internal/matching"
	"github.com/citycat/adoption-engine/internal/platform/logger"
	"github.com/citycat/adoption-engine/internal/scoring"
)

// matchCatLimit caps how many stored cats one match request will rank.
const matchCatLimit = 500

type Server struct {
	Scoring  *scoring.Engine
	Matching *matching.Engine
	Repos    Repos
	Log      *logger.Logger
}

func NewServer(sc *scoring.Engine, mt *matching.Engine, repos Repos, log *logger.Logger) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	return &Server{Scoring: sc, Matching: mt, Repos: repos, Log: log}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/score", s.handleScore)
	mux.HandleFunc("/match", s.handleMatch)
	mux.HandleFunc("/cats", s.handleCatsList)
	mux.HandleFunc("/cats/", s.handleCatByID)
	mux.HandleFunc("/applications", s.handleApplicationSubmit)
	mux.HandleFunc("/applications/", s.handleApplicationByID)
	mux.HandleFunc("/nav/filter", s.handleNavFilter)
	mux.HandleFunc("/permissions/resolve", s.handlePermissions)
	return s.withLogging(mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---- application scoring ----

type ScoreRequest struct {
	Application domain.AdoptionApplication `json:"application"`
	Weights     *scoring.Weights           `json:"weights,omitempty"`
}

type ScoreResponse struct {
	scoring.Result
	Tier scoring.Tier `json:"tier"`
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	engine := s.Scoring
	if req.Weights != nil {
		engine = scoring.NewEngine(*req.Weights)
	}
	result := engine.Score(req.Application)

	writeJSON(w, http.StatusOK, ScoreResponse{
		Result: result,
		Tier:   scoring.ScoreTier(result.Total),
	})
}

// ---- lifestyle matching ----

type MatchRequest struct {
	Answers domain.LifestyleAnswers `json:"answers"`
	Limit   int                     `json:"limit"`
}

type MatchResponse struct {
	Results []domain.MatchResult `json:"results"`
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	limit := req.Limit
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	cats, _, err := s.Repos.Cats.List(r.Context(), ListParams{Limit: matchCatLimit, Status: domain.StatusAdoption})
	if err != nil {
		s.Log.Error("list cats for match", "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	results := s.Matching.MatchAll(req.Answers, cats)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	writeJSON(w, http.StatusOK, MatchResponse{Results: results})
}

// ---- cats ----

type CatsListResponse struct {
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
	Total  int                 `json:"total"`
	Items  []domain.CatProfile `json:"items"`
}

func (s *Server) handleCatsList(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCatCreate(w, r)
	case http.MethodGet:
		limit, offset := parseLimitOffset(r, 20, 0)
		params := ListParams{
			Limit:  limit,
			Offset: offset,
			Status: domain.CatStatus(r.URL.Query().Get("status")),
		}
		if v := r.URL.Query().Get("min_age"); v != "" {
			if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
				params.MinAge = parsed
			}
		}
		cats, total, err := s.Repos.Cats.List(r.Context(), params)
		if err != nil {
			s.Log.Error("list cats", "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		if cats == nil {
			cats = []domain.CatProfile{}
		}
		writeJSON(w, http.StatusOK, CatsListResponse{Limit: limit, Offset: offset, Total: total, Items: cats})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCatCreate(w http.ResponseWriter, r *http.Request) {
	var cat domain.CatProfile
	if err := json.NewDecoder(r.Body).Decode(&cat); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if cat.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	if cat.Age < 0 {
		http.Error(w, "age must be >= 0", http.StatusBadRequest)
		return
	}
	if cat.Status == "" {
		cat.Status = domain.StatusShelter
	}

	created, err := s.Repos.Cats.Create(r.Context(), cat)
	if err != nil {
		s.Log.Error("create cat", "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCatByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/cats/")
	if rest == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}

	if id, ok := strings.CutSuffix(rest, "/heart-triggers"); ok {
		s.handleHeartTriggers(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodGet:
		cat, found, err := s.Repos.Cats.Get(r.Context(), rest)
		if err != nil {
			s.Log.Error("get cat", "id", rest, "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		writeJSON(w, http.StatusOK, cat)

	case http.MethodDelete:
		deleted, err := s.Repos.Cats.Delete(r.Context(), rest)
		if err != nil {
			s.Log.Error("delete cat", "id", rest, "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		if !deleted {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})

	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

type HeartTriggersResponse struct {
	CatID           string   `json:"cat_id"`
	IsHeartAdoption bool     `json:"is_heart_adoption"`
	Triggers        []string `json:"triggers"`
}

func (s *Server) handleHeartTriggers(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cat, found, err := s.Repos.Cats.Get(r.Context(), id)
	if err != nil {
		s.Log.Error("get cat for triggers", "id", id, "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}
	triggers := heart.DetectTriggers(cat)
	if triggers == nil {
		triggers = []string{}
	}
	writeJSON(w, http.StatusOK, HeartTriggersResponse{
		CatID:           cat.ID,
		IsHeartAdoption: heart.IsHeartAdoption(cat),
		Triggers:        triggers,
	})
}

// ---- applications ----

type ApplicationResponse struct {
	Application domain.AdoptionApplication `json:"application"`
	Scoring     ScoreResponse              `json:"scoring"`
}

// handleApplicationSubmit persists a submitted form and returns it together
// with the scoring breakdown for the shelter review screen.
func (s *Server) handleApplicationSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var app domain.AdoptionApplication
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if app.ApplicantEmail == "" {
		http.Error(w, "applicant_email is required", http.StatusBadRequest)
		return
	}
	if app.AbsenceHours < 0 {
		http.Error(w, "absence_hours must be >= 0", http.StatusBadRequest)
		return
	}

	saved, err := s.Repos.Applications.SaveApplication(r.Context(), app)
	if err != nil {
		s.Log.Error("save application", "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	result := s.Scoring.Score(saved)
	writeJSON(w, http.StatusCreated, ApplicationResponse{
		Application: saved,
		Scoring:     ScoreResponse{Result: result, Tier: scoring.ScoreTier(result.Total)},
	})
}

func (s *Server) handleApplicationByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/applications/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing_id"})
		return
	}

	app, found, err := s.Repos.Applications.GetApplication(r.Context(), id)
	if err != nil {
		s.Log.Error("get application", "id", id, "err", err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
		return
	}

	result := s.Scoring.Score(app)
	writeJSON(w, http.StatusOK, ApplicationResponse{
		Application: app,
		Scoring:     ScoreResponse{Result: result, Tier: scoring.ScoreTier(result.Total)},
	})
}

// ---- navigation / permissions ----

type NavFilterRequest struct {
	Role  domain.UserRole      `json:"role"`
	Items []domain.NavItem     `json:"items"`
	Flags []domain.FeatureFlag `json:"flags,omitempty"`
}

type NavFilterResponse struct {
	Items []domain.NavItem `json:"items"`
}

func (s *Server) handleNavFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req NavFilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	flags := req.Flags
	if flags == nil && s.Repos.Flags != nil {
		stored, err := s.Repos.Flags.ListFlags(r.Context(), req.Role)
		if err != nil {
			s.Log.Error("list flags", "role", req.Role, "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		flags = stored
	}

	items := access.FilterNav(req.Role, req.Items, flags)
	if items == nil {
		items = []domain.NavItem{}
	}
	writeJSON(w, http.StatusOK, NavFilterResponse{Items: items})
}

type PermissionsRequest struct {
	User         domain.User          `json:"user"`
	Affiliations []domain.Affiliation `json:"affiliations,omitempty"`
}

type PermissionsResponse struct {
	Permissions []domain.Permission `json:"permissions"`
}

func (s *Server) handlePermissions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	affs := req.Affiliations
	if affs == nil && s.Repos.Affiliations != nil {
		stored, err := s.Repos.Affiliations.ListByEmail(r.Context(), req.User.Email)
		if err != nil {
			s.Log.Error("list affiliations", "email", req.User.Email, "err", err)
			http.Error(w, "storage error", http.StatusInternalServerError)
			return
		}
		affs = stored
	}

	set := access.ResolvePermissions(req.User, affs)
	writeJSON(w, http.StatusOK, PermissionsResponse{Permissions: set.Sorted()})
}

// ---- helpers ----

func parseLimitOffset(r *http.Request, defLimit, defOffset int) (int, int) {
	q := r.URL.Query()

	limit := defLimit
	if v := q.Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit <= 0 {
		limit = defLimit
	}
	// safety cap
	if limit > 200 {
		limit = 200
	}

	offset := defOffset
	if v := q.Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = defOffset
	}

	return limit, offset
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
