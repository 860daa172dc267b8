package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-lending/app"
	"library-lending/lending"
	"library-lending/loggers"
	"library-lending/models"
)

type MemberController struct{ *Srv }

func NewMemberController(s *Srv) *MemberController { return &MemberController{Srv: s} }

func (mc *MemberController) ListMembers(c *gin.Context) {
	members, err := mc.Store.Members().GetAll(c.Request.Context())
	if err != nil {
		loggers.Logger.Error("list members: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, app.H{"members": members})
}

func (mc *MemberController) GetMember(c *gin.Context) {
	member, err := mc.Store.Members().GetByID(c.Request.Context(), c.Param("id"))
	if errors.Is(err, lending.ErrNotFound) {
		c.JSON(http.StatusNotFound, app.H{"error": "member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, member)
}

func (mc *MemberController) CreateMember(c *gin.Context) {
	var in struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	member := &models.Member{ID: uuid.NewString(), Name: in.Name}
	if err := mc.Store.Members().Add(c.Request.Context(), member); err != nil {
		loggers.Logger.Error("create member: ", err)
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, member)
}

func (mc *MemberController) UpdateMember(c *gin.Context) {
	var in models.Member
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.ID != c.Param("id") {
		c.JSON(http.StatusBadRequest, app.H{"error": "id mismatch"})
		return
	}
	if err := mc.Store.Members().Update(c.Request.Context(), &in); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (mc *MemberController) DeleteMember(c *gin.Context) {
	if err := mc.Store.Members().Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
