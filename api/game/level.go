package gameapi

import (
	"errors"
	"net/http"

	"github.com/beka-birhanu/vinom-trapmaze/api/identity"
	"github.com/beka-birhanu/vinom-trapmaze/game"
	pb "github.com/beka-birhanu/vinom-trapmaze/game/pb_encoder"
	"github.com/beka-birhanu/vinom-trapmaze/service"
	"github.com/beka-birhanu/vinom-trapmaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LevelController serves maze levels to signed-in players.
type LevelController struct {
	sessions i.LevelSessionManager
	encoder  game.Encoder
	logger   i.Logger
}

// NewLevelController initializes a LevelController. encoder serves binary state
// to clients that accept pb.ContentType.
func NewLevelController(sm i.LevelSessionManager, encoder game.Encoder, logger i.Logger) (*LevelController, error) {
	if sm == nil || encoder == nil || logger == nil {
		return nil, errors.New("level controller needs a session manager, an encoder and a logger")
	}
	return &LevelController{
		sessions: sm,
		encoder:  encoder,
		logger:   logger,
	}, nil
}

// RegisterPublic registers public routes.
func (lc *LevelController) RegisterPublic(route *gin.RouterGroup) {}

// RegisterProtected registers protected routes.
func (lc *LevelController) RegisterProtected(route *gin.RouterGroup) {
	levels := route.Group("/levels")
	{
		levels.POST("", lc.newLevel)
		levels.GET("/:ID", lc.state)
		levels.DELETE("/:ID", lc.end)
		levels.POST("/:ID/moves", lc.move)
	}
}

// newLevel generates a fresh maze for the caller.
func (lc *LevelController) newLevel(ctx *gin.Context) {
	player, err := identity.PlayerFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	sessionID, state, err := lc.sessions.NewSession(ctx.Request.Context(), player)
	if err != nil {
		lc.logger.Error("creating level: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while creating level"})
		return
	}

	ctx.JSON(http.StatusCreated, &LevelResponse{SessionID: sessionID.String(), State: state})
}

// state returns the fogged state of a level, as protobuf when the client asks for it.
func (lc *LevelController) state(ctx *gin.Context) {
	player, sessionID, ok := lc.target(ctx)
	if !ok {
		return
	}

	state, err := lc.sessions.State(player.ID, sessionID)
	if err != nil {
		lc.abortWithSessionError(ctx, err)
		return
	}

	if ctx.NegotiateFormat(gin.MIMEJSON, pb.ContentType) == pb.ContentType {
		b, err := lc.encoder.MarshalState(state)
		if err != nil {
			lc.logger.Error("encoding level state: " + err.Error())
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding state"})
			return
		}
		ctx.Data(http.StatusOK, pb.ContentType, b)
		return
	}

	ctx.JSON(http.StatusOK, &LevelResponse{SessionID: sessionID.String(), State: state})
}

// move applies one move to a level.
func (lc *LevelController) move(ctx *gin.Context) {
	player, sessionID, ok := lc.target(ctx)
	if !ok {
		return
	}

	var request MoveRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev, state, err := lc.sessions.Move(ctx.Request.Context(), player.ID, sessionID, request.Direction)
	switch {
	case errors.Is(err, game.ErrInvalidDirection):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, game.ErrLevelOver):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		lc.abortWithSessionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, &MoveResponse{Event: ev, State: state})
}

// end drops a level.
func (lc *LevelController) end(ctx *gin.Context) {
	player, sessionID, ok := lc.target(ctx)
	if !ok {
		return
	}

	if err := lc.sessions.End(player.ID, sessionID); err != nil {
		lc.abortWithSessionError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// target resolves the caller and the session named in the path, writing the error response when either fails.
func (lc *LevelController) target(ctx *gin.Context) (i.Player, uuid.UUID, bool) {
	player, err := identity.PlayerFromContext(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return i.Player{}, uuid.Nil, false
	}

	sessionID, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid level id"})
		return i.Player{}, uuid.Nil, false
	}
	return player, sessionID, true
}

func (lc *LevelController) abortWithSessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotSessionOwner):
		ctx.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		lc.logger.Error("level session: " + err.Error())
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while reading level"})
	}
}
