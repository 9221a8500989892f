package server

import (
	"errors"
	"net/http"

	"bienvenue/pkg/types"
)

func (s *Service) handleCities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cities, err := s.directory.Cities(ctx)
	if err != nil {
		s.logger.WithError(err).Error("failed to load cities")
		s.internalServerError(w)
		return
	}

	data := &types.CitiesPageData{
		BasePageData: types.BasePageData{Title: "Cities & Schools"},
		Cities:       cities,
	}

	if err := s.renderTemplate(w, r, "page.cities", data); err != nil {
		s.logger.WithError(err).Error("failed to render cities page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleCityDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	city, err := s.directory.CityBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrCityNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("slug", slug).Error("failed to load city")
		s.internalServerError(w)
		return
	}

	schools, err := s.directory.SchoolsByCity(ctx, city.ID)
	if err != nil {
		s.logger.WithError(err).WithField("city_id", city.ID).Error("failed to load schools")
		s.internalServerError(w)
		return
	}

	data := &types.CityPageData{
		BasePageData: types.BasePageData{Title: city.Name},
		City:         city,
		Schools:      schools,
	}

	if err := s.renderTemplate(w, r, "page.city", data); err != nil {
		s.logger.WithError(err).Error("failed to render city page")
		s.internalServerError(w)
		return
	}
}

func (s *Service) handleSchoolDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")

	school, err := s.directory.SchoolBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, types.ErrSchoolNotFound) {
			http.NotFound(w, r)
			return
		}
		s.logger.WithError(err).WithField("slug", slug).Error("failed to load school")
		s.internalServerError(w)
		return
	}

	city, err := s.directory.CityByID(ctx, school.CityID)
	if err != nil {
		s.logger.WithError(err).WithField("city_id", school.CityID).Error("failed to load school city")
		s.internalServerError(w)
		return
	}

	data := &types.SchoolPageData{
		BasePageData: types.BasePageData{Title: school.Name},
		City:         city,
		School:       school,
	}

	if err := s.renderTemplate(w, r, "page.school", data); err != nil {
		s.logger.WithError(err).Error("failed to render school page")
		s.internalServerError(w)
		return
	}
}
