package router

import (
	"html/template"
	"net/http"
	"time"

	"blogicum/internal/config"
	"blogicum/internal/handlers"
	"blogicum/internal/middleware"
	"blogicum/internal/services"
	"blogicum/internal/utils"
	"blogicum/web"

	"github.com/dustin/go-humanize"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionMaxAge = 14 * 24 * 60 * 60

// New builds the engine with every middleware, template and route of the
// blog. images is where post images are written and served from.
func New(cfg config.Config, conn *gorm.DB, images services.ImageStore) (*gin.Engine, error) {
	posts := services.NewPostService(conn, images, cfg.PostsPerPage, int64(cfg.MaxUploadMB)<<20)
	comments := services.NewCommentService(conn)
	categories := services.NewCategoryService(conn)
	users := services.NewUserService(conn)

	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.MaxUploadMB+1) << 20
	r.Use(handlers.Recover(), middleware.RequestLogger(), gzip.Gzip(gzip.DefaultCompression))

	// Setup Sessions
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("sessionid", store))

	renderer, err := web.Templates(funcMap(images))
	if err != nil {
		return nil, err
	}
	r.HTMLRender = renderer

	// Static Assets
	r.StaticFS("/static", web.Static())
	if local, ok := images.(*services.LocalStore); ok && cfg.Debug {
		r.Static(cfg.MediaURL, local.Root)
	}

	r.Use(middleware.LoadUser(users))
	if !cfg.CSRFDisabled {
		secret := cfg.CSRFKey
		if secret == "" {
			secret = cfg.SessionSecret
		}
		r.Use(middleware.CSRF(middleware.CSRFKey(secret), cfg.CookieSecure, handlers.CSRFFailure))
	}
	r.NoRoute(handlers.NotFound)

	registerRoutes(r,
		handlers.NewBlogHandler(posts, comments, categories),
		handlers.NewPostHandler(posts, categories),
		handlers.NewCommentHandler(posts, comments),
		handlers.NewProfileHandler(users, posts),
		handlers.NewAuthHandler(users),
		handlers.NewFeedHandler(posts),
	)
	return r, nil
}

func registerRoutes(
	r *gin.Engine,
	blog *handlers.BlogHandler,
	post *handlers.PostHandler,
	comment *handlers.CommentHandler,
	profile *handlers.ProfileHandler,
	auth *handlers.AuthHandler,
	feed *handlers.FeedHandler,
) {
	// Public Routes
	r.GET("/", blog.Index)
	r.GET("/posts/:id/", blog.PostDetail)
	r.GET("/category/:slug/", blog.CategoryPosts)
	r.GET("/profile/:username/", profile.Profile)
	r.GET("/pages/about/", handlers.About)
	r.GET("/pages/rules/", handlers.Rules)
	r.GET("/feed/", feed.Latest)

	r.GET("/auth/registration/", auth.ShowRegister)
	r.POST("/auth/registration/", auth.Register)
	r.GET("/auth/login/", auth.ShowLogin)
	r.POST("/auth/login/", auth.Login)
	r.GET("/auth/logout/", auth.Logout)
	r.POST("/auth/logout/", auth.Logout)

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/posts/create/", post.ShowCreate)
		authorized.POST("/posts/create/", post.Create)
		authorized.GET("/posts/:id/edit/", post.ShowEdit)
		authorized.POST("/posts/:id/edit/", post.Update)
		authorized.GET("/posts/:id/delete/", post.ShowDelete)
		authorized.POST("/posts/:id/delete/", post.Delete)

		authorized.GET("/posts/:id/comment/", comment.ShowCreate)
		authorized.POST("/posts/:id/comment/", comment.Create)
		authorized.GET("/posts/:id/comment/:cid/edit/", comment.ShowEdit)
		authorized.POST("/posts/:id/comment/:cid/edit/", comment.Update)
		authorized.GET("/posts/:id/comment/:cid/delete/", comment.ShowDelete)
		authorized.POST("/posts/:id/comment/:cid/delete/", comment.Delete)

		authorized.GET("/profile/:username/edit/", profile.ShowEdit)
		authorized.POST("/profile/:username/edit/", profile.Update)

		authorized.GET("/auth/password_change/", auth.ShowPasswordChange)
		authorized.POST("/auth/password_change/", auth.PasswordChange)
		authorized.GET("/auth/password_change/done/", auth.PasswordChangeDone)
	}
}

func funcMap(images services.ImageStore) template.FuncMap {
	return template.FuncMap{
		"markdown":   utils.RenderText,
		"excerpt":    utils.Excerpt,
		"mediaURL":   images.URL,
		"profileURL": handlers.ProfilePath,
		"date": func(t time.Time) string {
			return t.UTC().Format("2 January 2006, 15:04")
		},
		"ago": humanize.Time,
	}
}
