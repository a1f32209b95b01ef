package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quill/internal/models/request_models"
	"quill/internal/services"
	"quill/pkg/utils"
)

type PersonaController struct {
	personaService services.PersonaServiceInterface
}

func NewPersonaController(personaService services.PersonaServiceInterface) *PersonaController {
	return &PersonaController{personaService: personaService}
}

// List godoc
// @Summary List brand personas
// @Tags Personas
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]response_models.PersonaResponse}
// @Router /personas [get]
func (p *PersonaController) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	personas, err := p.personaService.List(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, personas, "")
}

// Create godoc
// @Summary Create a persona
// @Tags Personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request_models.CreatePersonaRequest true "Persona"
// @Success 201 {object} utils.APIResponse{data=response_models.PersonaResponse}
// @Router /personas [post]
func (p *PersonaController) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req request_models.CreatePersonaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	persona, err := p.personaService.Create(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, persona, "Persona created")
}

// Update godoc
// @Summary Update a persona
// @Tags Personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Param request body request_models.UpdatePersonaRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.PersonaResponse}
// @Router /personas/{id} [patch]
func (p *PersonaController) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.UpdatePersonaRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	persona, err := p.personaService.Update(c.Request.Context(), userID, id, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, persona, "")
}

// Delete godoc
// @Summary Delete a persona and its key messages
// @Tags Personas
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Success 200 {object} utils.APIResponse
// @Router /personas/{id} [delete]
func (p *PersonaController) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := p.personaService.Delete(c.Request.Context(), userID, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Persona deleted")
}

// Activate godoc
// @Summary Make a persona the active brand voice
// @Tags Personas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Success 200 {object} utils.APIResponse{data=response_models.PersonaResponse}
// @Router /personas/{id}/activate [post]
func (p *PersonaController) Activate(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	persona, err := p.personaService.Activate(c.Request.Context(), userID, id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, persona, "Persona activated")
}

// ClearActive godoc
// @Summary Clear the active persona
// @Tags Personas
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /personas/active [delete]
func (p *PersonaController) ClearActive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := p.personaService.ClearActive(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Active persona cleared")
}

// ListKeyMessages godoc
// @Summary List a persona's key messages
// @Tags Personas
// @Produce json
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Success 200 {object} utils.APIResponse{data=[]response_models.KeyMessageResponse}
// @Router /personas/{id}/key-messages [get]
func (p *PersonaController) ListKeyMessages(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	personaID, ok := pathID(c, "id")
	if !ok {
		return
	}

	messages, err := p.personaService.ListKeyMessages(c.Request.Context(), userID, personaID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, messages, "")
}

// AddKeyMessage godoc
// @Summary Add a key message
// @Tags Personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Param request body request_models.KeyMessageRequest true "Key message"
// @Success 201 {object} utils.APIResponse{data=response_models.KeyMessageResponse}
// @Router /personas/{id}/key-messages [post]
func (p *PersonaController) AddKeyMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	personaID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req request_models.KeyMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	message, err := p.personaService.AddKeyMessage(c.Request.Context(), userID, personaID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondStatus(c, http.StatusCreated, message, "Key message added")
}

// UpdateKeyMessage godoc
// @Summary Edit a key message
// @Tags Personas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Param messageId path string true "Key message ID"
// @Param request body request_models.UpdateKeyMessageRequest true "Fields to change"
// @Success 200 {object} utils.APIResponse{data=response_models.KeyMessageResponse}
// @Router /personas/{id}/key-messages/{messageId} [patch]
func (p *PersonaController) UpdateKeyMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	personaID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}
	var req request_models.UpdateKeyMessageRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	message, err := p.personaService.UpdateKeyMessage(c.Request.Context(), userID, personaID, messageID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, message, "")
}

// DeleteKeyMessage godoc
// @Summary Remove a key message
// @Tags Personas
// @Security BearerAuth
// @Param id path string true "Persona ID"
// @Param messageId path string true "Key message ID"
// @Success 200 {object} utils.APIResponse
// @Router /personas/{id}/key-messages/{messageId} [delete]
func (p *PersonaController) DeleteKeyMessage(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	personaID, ok := pathID(c, "id")
	if !ok {
		return
	}
	messageID, ok := pathID(c, "messageId")
	if !ok {
		return
	}

	if err := p.personaService.DeleteKeyMessage(c.Request.Context(), userID, personaID, messageID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Key message deleted")
}
