package handlers

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"blogicum/internal/services"
	"blogicum/internal/utils"

	"github.com/gin-gonic/gin"
)

type rss struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string    `xml:"title"`
	Link          string    `xml:"link"`
	Description   string    `xml:"description"`
	LastBuildDate string    `xml:"lastBuildDate,omitempty"`
	Items         []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	GUID        string `xml:"guid"`
	Author      string `xml:"author,omitempty"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

// FeedHandler publishes the front page as an RSS 2.0 feed.
type FeedHandler struct {
	posts *services.PostService
}

func NewFeedHandler(posts *services.PostService) *FeedHandler {
	return &FeedHandler{posts: posts}
}

func (h *FeedHandler) Latest(c *gin.Context) {
	page, err := h.posts.ListPublished(c.Request.Context(), "1")
	if err != nil {
		fail(c, err)
		return
	}

	base := baseURL(c.Request)
	feed := rss{
		Version: "2.0",
		Channel: rssChannel{
			Title:       "Blogicum",
			Link:        base + "/",
			Description: "Latest posts",
		},
	}
	for i, p := range page.Items {
		if i == 0 {
			feed.Channel.LastBuildDate = p.PubDate.UTC().Format(time.RFC1123Z)
		}
		link := base + postPath(p.ID)
		item := rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        link,
			Author:      p.Author.Username,
			PubDate:     p.PubDate.UTC().Format(time.RFC1123Z),
			Description: string(utils.RenderText(p.Text)),
		}
		if p.Category != nil {
			item.Category = p.Category.Title
		}
		feed.Channel.Items = append(feed.Channel.Items, item)
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Status(http.StatusOK)
	_, _ = c.Writer.WriteString(xml.Header)
	if err := xml.NewEncoder(c.Writer).Encode(feed); err != nil {
		_ = c.Error(err)
	}
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, r.Host)
}
