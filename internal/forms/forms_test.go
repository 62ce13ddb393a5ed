package forms

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"blogicum/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postContext(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.Request = req
	return c
}

func TestBindPostFormValid(t *testing.T) {
	c := postContext(url.Values{
		"title":        {"Hello"},
		"text":         {"Body"},
		"pub_date":     {"2026-01-02T15:04"},
		"is_published": {"true"},
		"category":     {"3"},
	})

	var form PostForm
	require.Nil(t, Bind(c, &form))

	assert.Equal(t, "Hello", form.Title)
	assert.True(t, form.IsPublished)
	assert.Equal(t, time.Date(2026, 1, 2, 15, 4, 0, 0, time.UTC), form.PublishedAt())
	require.NotNil(t, form.CategoryID())
	assert.EqualValues(t, 3, *form.CategoryID())
	assert.Nil(t, form.LocationID())
}

func TestBindPostFormErrors(t *testing.T) {
	c := postContext(url.Values{
		"title":    {"   "},
		"text":     {""},
		"pub_date": {"yesterday"},
		"category": {"abc"},
	})

	var form PostForm
	errs := Bind(c, &form)
	require.NotNil(t, errs)

	assert.Equal(t, "This field is required.", errs.Get("Title"))
	assert.Equal(t, "This field is required.", errs.Get("Text"))
	assert.Equal(t, "Enter a valid date and time.", errs.Get("PubDate"))
	assert.Equal(t, "Select a valid choice.", errs.Get("Category"))
}

func TestBindCommentFormRejectsBlank(t *testing.T) {
	var form CommentForm
	errs := Bind(postContext(url.Values{"text": {""}}), &form)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "Text")

	errs = Bind(postContext(url.Values{"text": {"nice post"}}), &form)
	assert.Nil(t, errs)
}

func TestBindSignupForm(t *testing.T) {
	var form SignupForm
	errs := Bind(postContext(url.Values{
		"username":  {"bad name!"},
		"password1": {"longenough"},
		"password2": {"different1"},
	}), &form)
	require.NotNil(t, errs)
	assert.Contains(t, errs.Get("Username"), "valid username")
	assert.Equal(t, "The two password fields didn't match.", errs.Get("Password2"))

	errs = Bind(postContext(url.Values{
		"username":  {"alice"},
		"password1": {"short"},
		"password2": {"short"},
	}), &form)
	require.NotNil(t, errs)
	assert.Equal(t, "Ensure this value has at least 8 characters.", errs.Get("Password1"))
}

func TestPostFormFromRoundTrip(t *testing.T) {
	cat := uint(7)
	post := &models.Post{
		Title:       "T",
		Text:        "X",
		PubDate:     time.Date(2026, 3, 4, 5, 6, 0, 0, time.UTC),
		IsPublished: false,
		CategoryID:  &cat,
	}

	form := PostFormFrom(post)
	assert.Equal(t, "2026-03-04T05:06", form.PubDate)
	assert.Equal(t, "7", form.Category)
	assert.Equal(t, "", form.Location)
	assert.False(t, form.IsPublished)
	assert.Equal(t, post.PubDate, form.PublishedAt())
}
