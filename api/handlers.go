package api

import (
	"net/http"

	"github.com/Aidin1998/marketgw/common/apiutil"
	"github.com/Aidin1998/marketgw/internal/marketfeeds"
	"github.com/Aidin1998/marketgw/pkg/models"
	"github.com/gin-gonic/gin"
)

// issueToken exchanges form credentials for a bearer token.
// Missing fields are treated as empty strings and rejected like any other
// mismatch.
// @Summary Issue an access token
// @Tags auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} models.Token
// @Failure 401 {object} errors.ProblemDetails "Incorrect username or password"
// @Router /auth/token [post]
func (s *Server) issueToken(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := s.identities.Login(c.Request.Context(), username, password)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, token)
}

// listCoins pages the full coin list
// @Summary List all coins
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Param page_num query int false "Page number" default(1) minimum(1)
// @Param per_page query int false "Page size" default(10) minimum(1) maximum(250)
// @Success 200 {object} models.Page[models.CoinSummary]
// @Failure 400 {object} errors.ProblemDetails
// @Failure 401 {object} errors.ProblemDetails
// @Failure 502 {object} errors.ProblemDetails
// @Router /api/v1/coins [get]
func (s *Server) listCoins(c *gin.Context) {
	var q models.PageQuery
	if err := apiutil.BindQuery(c, &q); err != nil {
		s.writeError(c, err)
		return
	}

	page, err := s.marketfeeds.ListCoins(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// listCategories pages the full category list
// @Summary List all coin categories
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Param page_num query int false "Page number" default(1) minimum(1)
// @Param per_page query int false "Page size" default(10) minimum(1) maximum(250)
// @Success 200 {object} models.Page[models.CategorySummary]
// @Failure 400 {object} errors.ProblemDetails
// @Failure 401 {object} errors.ProblemDetails
// @Failure 502 {object} errors.ProblemDetails
// @Router /api/v1/categories [get]
func (s *Server) listCategories(c *gin.Context) {
	var q models.PageQuery
	if err := apiutil.BindQuery(c, &q); err != nil {
		s.writeError(c, err)
		return
	}

	page, err := s.marketfeeds.ListCategories(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// listCoinMarkets serves market data filtered by ids and/or category. The
// totals of the returned page describe the current page only. The category
// is forwarded to the provider exactly as received.
// @Summary List coin market data in INR and CAD
// @Description At least one of ids or category is required.
// @Tags coins
// @Produce json
// @Security BearerAuth
// @Param ids query string false "Comma separated coin ids"
// @Param category query string false "Category id"
// @Param page_num query int false "Page number" default(1) minimum(1)
// @Param per_page query int false "Page size" default(10) minimum(1) maximum(250)
// @Success 200 {object} models.Page[models.CoinMarketEntry]
// @Failure 400 {object} errors.ProblemDetails "Missing filter or invalid pagination"
// @Failure 401 {object} errors.ProblemDetails
// @Failure 502 {object} errors.ProblemDetails
// @Router /api/v1/coins/markets [get]
func (s *Server) listCoinMarkets(c *gin.Context) {
	var q models.PageQuery
	if err := apiutil.BindQuery(c, &q); err != nil {
		s.writeError(c, err)
		return
	}

	page, err := s.marketfeeds.ListCoinMarkets(c.Request.Context(), models.MarketsQuery{
		IDs:       marketfeeds.ParseIDs(c.Query("ids")),
		Category:  c.Query("category"),
		PageQuery: q,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// writeError attaches err for apiutil.RFC7807ErrorMiddleware to render and
// stops the chain.
func (s *Server) writeError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
