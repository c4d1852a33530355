package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/littlelemonco/littlelemon-backend/api/responses"
	"github.com/littlelemonco/littlelemon-backend/api/validators"
	"github.com/littlelemonco/littlelemon-backend/internal/catalog"
	pkgerrors "github.com/littlelemonco/littlelemon-backend/pkg/errors"
	"github.com/littlelemonco/littlelemon-backend/pkg/logger"
	"github.com/littlelemonco/littlelemon-backend/pkg/money"
)

type createMenuItemRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=128"`
	Price      string `json:"price" validate:"required"`
	Featured   bool   `json:"featured"`
	CategoryID string `json:"category_id" validate:"required,uuid"`
}

type updateMenuItemRequest struct {
	Title      *string `json:"title,omitempty"`
	Price      *string `json:"price,omitempty"`
	Featured   *bool   `json:"featured,omitempty"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid"`
}

func menuItemID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "menuItemId"))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid menu item id")
	}
	return id, nil
}

func ListMenuItems(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		priceOrder, err := validators.ParseQueryEnum(r, "ordering", "asc", "desc")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := catalog.MenuItemFilter{
			CategorySlug: strings.TrimSpace(r.URL.Query().Get("category")),
			TitleSearch:  strings.TrimSpace(r.URL.Query().Get("search")),
			PriceOrder:   priceOrder,
			Page:         page,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("featured")); raw != "" {
			featured := raw == "true"
			filter.Featured = &featured
		}

		result, err := svc.ListMenuItems(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"menu_items": result.Items,
			"total":      result.Total,
		})
	}
}

func CreateMenuItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		price, err := money.Parse(req.Price)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		categoryID, err := uuid.Parse(req.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		item, err := svc.CreateMenuItem(r.Context(), catalog.CreateMenuItemInput{
			Title:      req.Title,
			Price:      price,
			Featured:   req.Featured,
			CategoryID: categoryID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func GetMenuItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := menuItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.GetMenuItem(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func UpdateMenuItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := menuItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateMenuItemInput{
			Title:    req.Title,
			Featured: req.Featured,
		}
		if req.Price != nil {
			price, err := money.Parse(*req.Price)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.Price = &price
		}
		if req.CategoryID != nil {
			categoryID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}

		item, err := svc.UpdateMenuItem(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func DeleteMenuItem(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := menuItemID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenuItem(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
