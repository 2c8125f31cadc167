package handler

import (
	"net/http"

	"social-service/internal/service"

	"github.com/gin-gonic/gin"
)

type FriendHandler struct {
	friendService service.FriendService
}

func NewFriendHandler(friendService service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendRequest godoc
// @Summary      Send a friend request
// @Param        sender    query  string  true  "sender username"
// @Param        receiver  query  string  true  "receiver username"
// @Success      200  {object}  response.Payload
// @Router       /friend/sendRequest [post]
func (h *FriendHandler) SendRequest(c *gin.Context) {
	params, ok := requireQuery(c, "sender", "receiver")
	if !ok {
		return
	}

	payload, err := h.friendService.SendRequest(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// CheckRequest answers 200 even when no request exists; the payload status
// tells the two cases apart.
func (h *FriendHandler) CheckRequest(c *gin.Context) {
	params, ok := requireQuery(c, "sender", "receiver")
	if !ok {
		return
	}

	payload, err := h.friendService.CheckRequest(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *FriendHandler) CheckFriendship(c *gin.Context) {
	params, ok := requireQuery(c, "user1", "user2")
	if !ok {
		return
	}

	payload, err := h.friendService.CheckFriendship(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *FriendHandler) GetAllFriendsUsernames(c *gin.Context) {
	params, ok := requireQuery(c, "username")
	if !ok {
		return
	}

	usernames, err := h.friendService.GetAllFriendsUsernames(c.Request.Context(), params[0])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, usernames)
}

// AcceptRequest godoc
// @Summary      Accept a pending friend request
// @Param        sender    query  string  true  "original sender username"
// @Param        receiver  query  string  true  "accepter username"
// @Success      200  {object}  response.Payload
// @Router       /friend/acceptRequest [put]
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	params, ok := requireQuery(c, "sender", "receiver")
	if !ok {
		return
	}

	payload, err := h.friendService.AcceptRequest(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *FriendHandler) CancelRequest(c *gin.Context) {
	params, ok := requireQuery(c, "sender", "receiver")
	if !ok {
		return
	}

	payload, err := h.friendService.CancelRequest(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *FriendHandler) DeclineRequest(c *gin.Context) {
	params, ok := requireQuery(c, "sender", "receiver")
	if !ok {
		return
	}

	payload, err := h.friendService.DeclineRequest(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (h *FriendHandler) Unfriend(c *gin.Context) {
	params, ok := requireQuery(c, "unfriender", "unfriended")
	if !ok {
		return
	}

	payload, err := h.friendService.Unfriend(c.Request.Context(), params[0], params[1])
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

// RegisterRoutes wires the friend endpoints onto the API group.
func (h *FriendHandler) RegisterRoutes(r *gin.RouterGroup) {
	friend := r.Group("/friend")
	{
		friend.POST("/sendRequest", h.SendRequest)
		friend.GET("/checkRequest", h.CheckRequest)
		friend.GET("/checkFriendship", h.CheckFriendship)
		friend.GET("/getAllFriendsUsernames", h.GetAllFriendsUsernames)
		friend.PUT("/acceptRequest", h.AcceptRequest)
		friend.DELETE("/cancelRequest", h.CancelRequest)
		friend.DELETE("/declineRequest", h.DeclineRequest)
		friend.DELETE("/unfriend", h.Unfriend)
	}
}
