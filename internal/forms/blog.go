package forms

import (
	"strconv"
	"strings"
	"time"

	"blogicum/internal/models"
)

// DateTimeLayout matches the value of an <input type="datetime-local">.
const DateTimeLayout = "2006-01-02T15:04"

type PostForm struct {
	Title       string `form:"title" binding:"notblank,max=256"`
	Text        string `form:"text" binding:"notblank"`
	PubDate     string `form:"pub_date" binding:"required,datetime=2006-01-02T15:04"`
	IsPublished bool   `form:"is_published"`
	Category    string `form:"category" binding:"omitempty,number"`
	Location    string `form:"location" binding:"omitempty,number"`
}

// NewPostForm returns the form shown on the create page.
func NewPostForm(now time.Time) PostForm {
	return PostForm{
		PubDate:     now.UTC().Format(DateTimeLayout),
		IsPublished: true,
	}
}

// PostFormFrom pre-fills the form from an existing post.
func PostFormFrom(p *models.Post) PostForm {
	f := PostForm{
		Title:       p.Title,
		Text:        p.Text,
		PubDate:     p.PubDate.UTC().Format(DateTimeLayout),
		IsPublished: p.IsPublished,
	}
	if p.CategoryID != nil {
		f.Category = strconv.FormatUint(uint64(*p.CategoryID), 10)
	}
	if p.LocationID != nil {
		f.Location = strconv.FormatUint(uint64(*p.LocationID), 10)
	}
	return f
}

// PublishedAt parses PubDate as UTC. It must only be called on a validated form.
func (f PostForm) PublishedAt() time.Time {
	t, _ := time.ParseInLocation(DateTimeLayout, f.PubDate, time.UTC)
	return t
}

func (f PostForm) CategoryID() *uint { return optionalID(f.Category) }
func (f PostForm) LocationID() *uint { return optionalID(f.Location) }

func optionalID(raw string) *uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	v := uint(id)
	return &v
}

type CommentForm struct {
	Text string `form:"text" binding:"notblank,max=2000"`
}
