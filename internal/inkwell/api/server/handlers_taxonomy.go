package server

import (
	"net/http"
	"strings"

	"github.com/inkwell-press/inkwell/internal/inkwell/domain/models"
)

type taxonomyPage struct {
	Taxonomies []models.Taxonomy
	CanWrite   bool
}

func (s *Server) taxonomies(w http.ResponseWriter, r *http.Request) {
	taxonomies, err := s.blogService.Taxonomies(r.Context())
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.render(w, r, http.StatusOK, "pages/taxonomy.html", "Tags", taxonomyPage{
		Taxonomies: taxonomies,
		CanWrite:   currentUser(r.Context()).Can(models.PermWriteArticles),
	})
}

func (s *Server) createTaxonomy(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	st := stateFromContext(r.Context())
	user := st.user

	category := strings.TrimSpace(r.PostFormValue("category"))
	if category == "" {
		s.sessions.addFlash(r.Context(), w, st, "A tag needs a name.")
		http.Redirect(w, r, "/taxonomy", http.StatusSeeOther)

		return
	}

	if _, err := s.blogService.CreateTaxonomy(r.Context(), *user, category); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	http.Redirect(w, r, "/taxonomy", http.StatusSeeOther)
}

type editTaxonomyPage struct {
	Taxonomy models.Taxonomy
}

func (s *Server) editTaxonomyForm(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	taxonomy, err := s.blogService.Taxonomy(r.Context(), id)
	if err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	user := currentUser(r.Context())
	if user.ID != taxonomy.Author.ID && !user.IsAdministrator() {
		s.renderError(w, r, http.StatusForbidden, "You don't have permission to do that.")

		return
	}

	s.render(w, r, http.StatusOK, "pages/edit_taxonomy.html", "Edit tag", editTaxonomyPage{Taxonomy: taxonomy})
}

func (s *Server) editTaxonomy(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form input.")

		return
	}

	user := currentUser(r.Context())

	if err := s.blogService.EditTaxonomy(r.Context(), *user, id, r.PostFormValue("category")); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	http.Redirect(w, r, "/taxonomy", http.StatusSeeOther)
}

func (s *Server) deleteTaxonomy(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.renderError(w, r, http.StatusNotFound, "Not found.")

		return
	}

	st := stateFromContext(r.Context())
	user := st.user

	if err := s.blogService.DeleteTaxonomy(r.Context(), *user, id); err != nil {
		s.handleServiceError(w, r, err)

		return
	}

	s.sessions.addFlash(r.Context(), w, st, "The tag has been deleted.")
	http.Redirect(w, r, "/taxonomy", http.StatusSeeOther)
}
