package handler

import (
	"time"

	"newstagger/internal/model"
)

type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArticleResponse struct {
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Summary     string   `json:"summary"`
	PublishedAt string   `json:"published_at,omitempty"`
	Tags        []string `json:"tags"`
}

type NewsResponse struct {
	Category CategoryResponse  `json:"category"`
	News     []ArticleResponse `json:"news"`
}

type IndexResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

func toCategoryResponse(c model.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.DisplayName}
}

func toArticleResponse(a model.Article) ArticleResponse {
	res := ArticleResponse{
		Title:   a.Title,
		Link:    a.Link,
		Summary: a.Summary,
		Tags:    a.Tags,
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	if a.PublishedAt != nil {
		res.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	return res
}

func BuildNewsResponse(c model.Category, articles []model.Article) NewsResponse {
	res := NewsResponse{
		Category: toCategoryResponse(c),
		News:     make([]ArticleResponse, 0, len(articles)),
	}
	for _, a := range articles {
		res.News = append(res.News, toArticleResponse(a))
	}
	return res
}
