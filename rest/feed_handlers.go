package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/labstack/echo/v4"

	"github.com/Kalefullycode/roots-tech-news-sub000/domain"
	"github.com/Kalefullycode/roots-tech-news-sub000/utils/errors"
)

const maxLimit = 100

// aggregateFailureResponse is the body served when no source produced
// articles. Clients render their own placeholder set from it.
type aggregateFailureResponse struct {
	Success  bool             `json:"success"`
	Articles []domain.Article `json:"articles"`
	Error    string           `json:"error"`
	Errors   []string         `json:"errors,omitempty"`
}

func (h *handler) fetchRSS(c echo.Context) error {
	opts, err := parseAggregateOptions(c)
	if err != nil {
		return handleError(c, err, "FetchRSS")
	}

	ctx := c.Request().Context()
	res, err := h.aggregate.Execute(ctx, opts)
	if err != nil {
		if errors.IsAllSourcesFailed(err) {
			body := aggregateFailureResponse{
				Success:  false,
				Articles: []domain.Article{},
				Error:    "Failed to fetch RSS feeds from all sources",
			}
			if res != nil {
				body.Errors = res.Errors
			}
			return c.JSON(http.StatusInternalServerError, body)
		}
		return handleError(c, err, "FetchRSS")
	}

	c.Response().Header().Set("Cache-Control", h.cacheControl)
	if res.Cached {
		c.Response().Header().Set("X-Cache", "HIT")
	} else {
		c.Response().Header().Set("X-Cache", "MISS")
	}

	if strings.EqualFold(c.QueryParam("format"), "rss") {
		return h.renderRSS(c, res, opts.Category)
	}
	return c.JSON(http.StatusOK, res)
}

func parseAggregateOptions(c echo.Context) (domain.AggregateOptions, error) {
	var opts domain.AggregateOptions

	if raw := c.QueryParam("category"); raw != "" {
		category, ok := domain.ParseCategory(raw)
		if !ok {
			return opts, errors.NewValidationContextError(
				"unknown category",
				"rest", "RESTHandler", "FetchRSS",
				map[string]any{"field": "category", "value": raw},
			)
		}
		opts.Category = category
	}

	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxLimit {
			return opts, errors.NewValidationContextError(
				"limit must be an integer between 1 and 100",
				"rest", "RESTHandler", "FetchRSS",
				map[string]any{"field": "limit", "value": raw},
			)
		}
		opts.Limit = limit
	}

	switch sort := c.QueryParam("sort"); sort {
	case "", "date":
	case "relevance":
		opts.ByRelevance = true
	default:
		return opts, errors.NewValidationContextError(
			"sort must be date or relevance",
			"rest", "RESTHandler", "FetchRSS",
			map[string]any{"field": "sort", "value": sort},
		)
	}

	return opts, nil
}

// renderRSS republishes the aggregate as an RSS 2.0 channel.
func (h *handler) renderRSS(c echo.Context, res *domain.AggregateResult, category domain.Category) error {
	title := "RootsTechNews"
	if category != "" {
		title += " - " + string(category)
	}

	feed := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: h.publicURL},
		Description: "Aggregated AI and technology news",
		Updated:     res.LastUpdated,
		Created:     res.LastUpdated,
	}

	feed.Items = make([]*feeds.Item, 0, len(res.Articles))
	for _, a := range res.Articles {
		feed.Items = append(feed.Items, &feeds.Item{
			Id:          a.ID,
			Title:       a.Title,
			Link:        &feeds.Link{Href: a.URL},
			Description: a.Description,
			Author:      &feeds.Author{Name: a.Source.Name},
			Created:     a.PublishedAt,
		})
	}

	rss, err := feed.ToRss()
	if err != nil {
		return handleError(c, errors.NewUnknownContextError(
			"failed to render rss",
			"rest", "RESTHandler", "FetchRSS",
			err, nil,
		), "FetchRSS")
	}
	return c.Blob(http.StatusOK, "application/rss+xml; charset=utf-8", []byte(rss))
}
