package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/erazemk/najdeno/internal/model"
	"github.com/erazemk/najdeno/internal/store"
)

// itemForm carries submitted item fields back into the form on validation
// errors so the user doesn't lose their input.
type itemForm struct {
	Title        string
	Status       string
	Location     string
	Description  string
	ContactName  string
	ContactEmail string
	ImageURL     string
}

func parseItemForm(r *http.Request) itemForm {
	return itemForm{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Status:       strings.ToLower(strings.TrimSpace(r.FormValue("status"))),
		Location:     strings.TrimSpace(r.FormValue("location")),
		Description:  strings.TrimSpace(r.FormValue("description")),
		ContactName:  strings.TrimSpace(r.FormValue("contact_name")),
		ContactEmail: strings.TrimSpace(r.FormValue("contact_email")),
		ImageURL:     strings.TrimSpace(r.FormValue("image_url")),
	}
}

// valid reports whether the required fields survived trimming.
func (f itemForm) valid() bool {
	return f.Title != "" && f.Location != "" && f.ContactEmail != ""
}

func (f itemForm) fields() store.ItemFields {
	return store.ItemFields{
		Title:        f.Title,
		Status:       f.Status,
		Location:     f.Location,
		Description:  f.Description,
		ContactName:  f.ContactName,
		ContactEmail: f.ContactEmail,
		ImageURL:     f.ImageURL,
	}
}

const requiredFieldsMessage = "Title, location, and contact email are required."

// ReportPage handles GET /report.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "report.html", &struct {
		PageData
		Form itemForm
	}{
		PageData: PageData{Title: "Report an item", User: claims},
		Form:     itemForm{Status: model.ItemStatusLost},
	})
}

// ReportSubmit handles POST /report. Authenticated reporters own the new
// item; anonymous reports carry no owner and stay uneditable.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetWebClaims(r.Context())
	form := parseItemForm(r)

	if !form.valid() {
		s.Templates.Render(w, "report.html", &struct {
			PageData
			Form itemForm
		}{
			PageData: PageData{Title: "Report an item", User: claims, Error: requiredFieldsMessage},
			Form:     form,
		})
		return
	}

	var ownerID *string
	ownerEmail := form.ContactEmail
	if claims != nil {
		ownerID = &claims.UserID
		ownerEmail = claims.Email
	}

	item, err := store.CreateItem(r.Context(), s.DB, form.fields(), ownerID, ownerEmail)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create item")
		s.renderServerError(w, err)
		return
	}

	log.Info().Str("item", item.ID).Str("title", item.Title).Msg("Item reported")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// EditPage handles GET /item/{id}/edit (owner only).
func (s *Server) EditPage(w http.ResponseWriter, r *http.Request) {
	item, ok := s.loadOwnedItem(w, r)
	if !ok {
		return
	}

	s.renderEditForm(w, r, item, itemForm{
		Title:        item.Title,
		Status:       item.Status,
		Location:     item.Location,
		Description:  item.Description,
		ContactName:  item.ContactName,
		ContactEmail: item.ContactEmail,
		ImageURL:     item.ImageURL,
	}, "")
}

// EditSubmit handles POST /item/{id}/edit (owner only).
func (s *Server) EditSubmit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.loadOwnedItem(w, r)
	if !ok {
		return
	}

	form := parseItemForm(r)
	if !form.valid() {
		s.renderEditForm(w, r, item, form, requiredFieldsMessage)
		return
	}

	// An unknown status keeps the previous one.
	if !model.ValidItemStatus(form.Status) {
		form.Status = item.Status
	}

	if err := store.UpdateItem(r.Context(), s.DB, item.ID, form.fields()); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.renderNotFound(w)
			return
		}
		log.Error().Err(err).Msg("Failed to update item")
		s.renderServerError(w, err)
		return
	}

	log.Info().Str("item", item.ID).Msg("Item updated")
	http.Redirect(w, r, fmt.Sprintf("/item/%s", item.ID), http.StatusSeeOther)
}

// loadOwnedItem loads the item from the path and enforces the ownership
// check: 404 when the item is missing or the id malformed, 403 when the
// caller isn't the owner. Anonymous items are never editable.
func (s *Server) loadOwnedItem(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	item, err := store.GetItem(r.Context(), s.DB, mux.Vars(r)["id"])
	if errors.Is(err, store.ErrInvalidID) {
		s.renderNotFound(w)
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("Failed to get item")
		s.renderServerError(w, err)
		return nil, false
	}
	if item == nil {
		s.renderNotFound(w)
		return nil, false
	}

	claims := GetWebClaims(r.Context())
	if claims == nil || !item.OwnedBy(claims.UserID) {
		s.renderForbidden(w)
		return nil, false
	}

	return item, true
}

func (s *Server) renderEditForm(w http.ResponseWriter, r *http.Request, item *model.Item, form itemForm, errMsg string) {
	claims := GetWebClaims(r.Context())
	s.Templates.Render(w, "edit.html", &struct {
		PageData
		Item *model.Item
		Form itemForm
	}{
		PageData: PageData{Title: "Edit report", User: claims, Error: errMsg},
		Item:     item,
		Form:     form,
	})
}
