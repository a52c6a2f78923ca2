package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"

	"github.com/boostbay/boostbay-golang/internal/models"
)

//
// --- Blog Handlers (Public + Admin) ---
//

// GetBlogPosts is the handler for GET /v1/blog. Only published posts are
// visible on the public listing; the body is omitted to keep it light.
func (h *Handlers) GetBlogPosts(c *gin.Context) {
	posts := []models.BlogPost{}
	query := `
		SELECT id, title, slug, excerpt, '' AS body, published, created_at, updated_at
		FROM blog_posts WHERE published ORDER BY created_at DESC`
	if err := h.DB.Select(&posts, query); err != nil {
		h.Log.WithError(err).Error("failed to list blog posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetBlogPostBySlug is the handler for GET /v1/blog/:slug.
func (h *Handlers) GetBlogPostBySlug(c *gin.Context) {
	var post models.BlogPost
	query := `
		SELECT id, title, slug, excerpt, body, published, created_at, updated_at
		FROM blog_posts WHERE slug = $1 AND published`
	if err := h.DB.Get(&post, query, c.Param("slug")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// BlogPostInput is the JSON body for creating or updating a blog post.
type BlogPostInput struct {
	Title     string `json:"title" binding:"required"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body" binding:"required"`
	Published bool   `json:"published"`
}

// AdminGetBlogPosts is the handler for GET /v1/admin/blog. Unlike the public
// listing, drafts are included.
func (h *Handlers) AdminGetBlogPosts(c *gin.Context) {
	posts := []models.BlogPost{}
	query := `
		SELECT id, title, slug, excerpt, '' AS body, published, created_at, updated_at
		FROM blog_posts ORDER BY created_at DESC`
	if err := h.DB.Select(&posts, query); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load blog posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// AdminCreateBlogPost is the handler for POST /v1/admin/blog.
func (h *Handlers) AdminCreateBlogPost(c *gin.Context) {
	var input BlogPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.BlogPost
	query := `
		INSERT INTO blog_posts (title, slug, excerpt, body, published)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, slug, excerpt, body, published, created_at, updated_at`

	err := h.DB.Get(&post, query,
		input.Title, slug.Make(input.Title), input.Excerpt, input.Body, input.Published)
	if err != nil {
		h.Log.WithError(err).Error("failed to create blog post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post created", "post": post})
}

// AdminUpdateBlogPost is the handler for PUT /v1/admin/blog/:id.
func (h *Handlers) AdminUpdateBlogPost(c *gin.Context) {
	var input BlogPostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := `
		UPDATE blog_posts
		SET title = $1, slug = $2, excerpt = $3, body = $4, published = $5, updated_at = now()
		WHERE id = $6`

	result, err := h.DB.Exec(query,
		input.Title, slug.Make(input.Title), input.Excerpt, input.Body, input.Published, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post updated"})
}

// AdminDeleteBlogPost is the handler for DELETE /v1/admin/blog/:id.
func (h *Handlers) AdminDeleteBlogPost(c *gin.Context) {
	result, err := h.DB.Exec("DELETE FROM blog_posts WHERE id = $1", c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
