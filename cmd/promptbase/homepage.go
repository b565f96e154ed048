package main

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/promptbase/lib/promptstore"
	"github.com/oliverisaac/promptbase/types"
	"github.com/oliverisaac/promptbase/views"
	"github.com/sirupsen/logrus"
)

func homePageHandler(store *promptstore.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter := c.QueryParam("q")
		sort := promptstore.ParseSortMode(c.QueryParam("sort"))

		pageData := types.HomePageData{
			Filter: filter,
			Sort:   string(sort),
			Form:   types.NewPromptForm(),
		}

		if notice := popFlash(c); notice != "" {
			pageData = pageData.WithNotice(notice)
		}

		prompts, err := store.List(filter, sort)
		if err != nil {
			logrus.Error(err)
			pageData = pageData.WithError(err)
		}
		pageData = pageData.WithPrompts(prompts)

		if rawID := c.QueryParam("edit"); rawID != "" {
			id, convErr := strconv.ParseUint(rawID, 10, 32)
			if convErr != nil {
				pageData = pageData.WithError(fmt.Errorf("invalid prompt id %q", rawID))
			} else if prompt, getErr := store.Get(uint(id)); getErr != nil {
				logrus.Error(getErr)
				pageData = pageData.WithError(getErr)
			} else {
				pageData = pageData.WithForm(types.EditPromptForm(prompt))
			}
		}

		return render(c, 200, views.Index(pageData))
	}
}
