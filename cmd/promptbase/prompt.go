package main

import (
	errs "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/promptbase/lib/promptstore"
	"github.com/oliverisaac/promptbase/types"
	"github.com/oliverisaac/promptbase/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// listURL rebuilds the listing URL from the q and sort values the action form
// carried, so filter and sort survive the post-redirect-get hop.
func listURL(c echo.Context) string {
	params := url.Values{}
	if q := c.FormValue("q"); q != "" {
		params.Set("q", q)
	}
	if sort := c.FormValue("sort"); sort != "" {
		params.Set("sort", sort)
	}
	if len(params) == 0 {
		return "/"
	}
	return "/?" + params.Encode()
}

func formFromRequest(c echo.Context) (types.PromptForm, error) {
	form := types.PromptForm{
		Mode:       types.FormModeAdd,
		Title:      c.FormValue("title"),
		Content:    c.FormValue("content"),
		IsFavorite: c.FormValue("favorite") == "on",
	}

	if rawID := c.FormValue("id"); rawID != "" {
		id, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil {
			return form, fmt.Errorf("invalid prompt id %q", rawID)
		}
		form.Mode = types.FormModeEdit
		form.ID = uint(id)
	}

	return form, nil
}

// rerenderPage rebuilds the whole page after a failed action: the current
// list plus the submitted form values so the user can correct and resubmit.
func rerenderPage(c echo.Context, store *promptstore.Store, status int, form types.PromptForm, formErr error) error {
	filter := c.FormValue("q")
	sort := promptstore.ParseSortMode(c.FormValue("sort"))

	pageData := types.HomePageData{
		Filter: filter,
		Sort:   string(sort),
	}.WithForm(form).WithFormError(formErr)

	prompts, err := store.List(filter, sort)
	if err != nil {
		logrus.Error(err)
		pageData = pageData.WithError(err)
	}
	pageData = pageData.WithPrompts(prompts)

	return render(c, status, views.Index(pageData))
}

func statusForStoreError(err error) int {
	if errs.Is(err, promptstore.ErrNotFound) {
		return http.StatusNotFound
	}
	var validationErr promptstore.ValidationError
	if errs.As(err, &validationErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func savePrompt(store *promptstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := formFromRequest(c)
		if err != nil {
			return rerenderPage(c, store, http.StatusUnprocessableEntity, form, err)
		}

		// Reject empty fields here, before any store call, keeping the
		// typed values on screen.
		if form.Title == "" {
			return rerenderPage(c, store, 422, form, promptstore.ValidationError{Field: "title"})
		}
		if form.Content == "" {
			return rerenderPage(c, store, 422, form, promptstore.ValidationError{Field: "content"})
		}

		if form.Mode == types.FormModeEdit {
			_, err = store.Update(form.ID, form.Title, form.Content, form.IsFavorite)
		} else {
			_, err = store.Create(form.Title, form.Content, form.IsFavorite)
		}
		if err != nil {
			logrus.Error(errors.Wrap(err, "Saving prompt to db"))
			return rerenderPage(c, store, statusForStoreError(err), form, err)
		}

		setFlash(c, "Prompt saved.")
		return c.Redirect(http.StatusFound, listURL(c))
	}
}

func promptIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid prompt id %q", c.Param("id"))
	}
	return uint(id), nil
}

func toggleFavorite(store *promptstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := promptIDParam(c)
		if err != nil {
			return rerenderPage(c, store, http.StatusUnprocessableEntity, types.NewPromptForm(), err)
		}

		if _, err := store.ToggleFavorite(id); err != nil {
			logrus.Error(errors.Wrap(err, "toggling favorite"))
			return rerenderPage(c, store, statusForStoreError(err), types.NewPromptForm(), err)
		}

		return c.Redirect(http.StatusFound, listURL(c))
	}
}

func deletePrompt(store *promptstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := promptIDParam(c)
		if err != nil {
			return rerenderPage(c, store, http.StatusUnprocessableEntity, types.NewPromptForm(), err)
		}

		if err := store.Delete(id); err != nil {
			logrus.Error(errors.Wrap(err, "deleting prompt from db"))
			return rerenderPage(c, store, statusForStoreError(err), types.NewPromptForm(), err)
		}

		setFlash(c, "Prompt deleted.")
		return c.Redirect(http.StatusFound, listURL(c))
	}
}
