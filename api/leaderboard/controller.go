// Package leaderboardapi serves the public leaderboard and a player's run history.
package leaderboardapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/beka-birhanu/vinom-trapmaze/api/identity"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/gin-gonic/gin"
)

const defaultLimit = 10

// RankResponse is one leaderboard row.
type RankResponse struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	Steps    int    `json:"steps"`
}

// Controller serves leaderboard routes.
type Controller struct {
	leaderboard i.Leaderboard
	logger      i.Logger
}

// NewController creates a leaderboard Controller.
func NewController(lb i.Leaderboard, logger i.Logger) (*Controller, error) {
	if lb == nil || logger == nil {
		return nil, errors.New("leaderboard controller needs a leaderboard and a logger")
	}
	return &Controller{leaderboard: lb, logger: logger}, nil
}

// RegisterPublic registers public routes.
func (c *Controller) RegisterPublic(route *gin.RouterGroup) {
	route.GET("/leaderboard", c.top)
}

// RegisterProtected registers protected routes.
func (c *Controller) RegisterProtected(route *gin.RouterGroup) {
	route.GET("/scores/me", c.history)
}

func (c *Controller) top(ctx *gin.Context) {
	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}

	members, err := c.leaderboard.Top(ctx.Request.Context(), limit)
	if err != nil {
		c.logger.Error("reading leaderboard: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading leaderboard"})
		return
	}

	response := make([]RankResponse, len(members))
	for idx, m := range members {
		response[idx] = RankResponse{Rank: idx + 1, Username: m.Member, Steps: int(m.Score)}
	}
	ctx.JSON(http.StatusOK, response)
}

func (c *Controller) history(ctx *gin.Context) {
	player, err := identity.PlayerFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	limit, ok := parseLimit(ctx)
	if !ok {
		return
	}

	scores, err := c.leaderboard.History(ctx.Request.Context(), player.ID, limit)
	if err != nil {
		c.logger.Error("reading score history: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading scores"})
		return
	}
	ctx.JSON(http.StatusOK, scores)
}

// parseLimit reads ?limit, writing a 400 when it is not a positive integer.
func parseLimit(ctx *gin.Context) (int64, bool) {
	raw := ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit))
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return 0, false
	}
	return min(limit, service.MaxLeaderboardSize), true
}
