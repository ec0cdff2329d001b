package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"skillswap-backend/internal/domain"
	"skillswap-backend/internal/service"
	"skillswap-backend/internal/validation"
)

type SkillHandler struct {
	skillSvc service.SkillService
}

func NewSkillHandler(skillSvc service.SkillService) *SkillHandler {
	return &SkillHandler{skillSvc: skillSvc}
}

type addSkillRequest struct {
	Kind        string `json:"kind" validate:"required,oneof=OFFERED WANTED"`
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description" validate:"max=2000"`
	Rate        int32  `json:"rate" validate:"required,gte=1"`
	Level       string `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced Expert"`
}

func (h *SkillHandler) Add(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req addSkillRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if details := validation.Struct(req); details != nil {
		ValidationError(w, details)
		return
	}

	skill := &domain.Skill{
		Kind:        domain.SkillKind(req.Kind),
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Rate:        req.Rate,
		Level:       domain.SkillLevel(req.Level),
	}
	if err := h.skillSvc.AddSkill(r.Context(), actorID, skill); err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusCreated, "skill added", skill)
}

func (h *SkillHandler) Remove(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	skillID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		Error(w, http.StatusBadRequest, "invalid skill id")
		return
	}

	if err := h.skillSvc.RemoveSkill(r.Context(), actorID, int32(skillID)); err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "skill removed", nil)
}

func (h *SkillHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	kind := domain.SkillKindOffered
	if r.URL.Query().Get("kind") == string(domain.SkillKindWanted) {
		kind = domain.SkillKindWanted
	}

	skills, err := h.skillSvc.ListSkills(r.Context(), actorID, kind)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "skills", skills)
}

// Browse lists other members' offered skills for the marketplace view.
func (h *SkillHandler) Browse(w http.ResponseWriter, r *http.Request) {
	actorID, ok := UserIDFromContext(r.Context())
	if !ok {
		Error(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	page, pageSize := pagination(r)
	skills, total, err := h.skillSvc.BrowseMarketplace(r.Context(), actorID, page, pageSize)
	if err != nil {
		DomainError(w, err)
		return
	}

	JSON(w, http.StatusOK, "marketplace skills", map[string]any{
		"skills": skills,
		"total":  total,
	})
}

func pagination(r *http.Request) (int32, int32) {
	page := int32(1)
	pageSize := int32(20)
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
