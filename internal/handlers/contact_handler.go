package handlers

import (
	"context"
	"net/http"
	"time"

	"contacts-api/internal/schemas"
	"contacts-api/internal/utils"

	"github.com/gin-gonic/gin"
)

// ContactStore is implemented by services.ContactService.
type ContactStore interface {
	List(ctx context.Context, owner int64, filter schemas.ContactFilter) ([]*schemas.Contact, error)
	Get(ctx context.Context, owner, id int64) (*schemas.Contact, error)
	Create(ctx context.Context, owner int64, c schemas.NewContact) (*schemas.Contact, error)
	Update(ctx context.Context, owner, id int64, patch schemas.ContactPatch) (*schemas.Contact, error)
	Delete(ctx context.Context, owner, id int64) (*schemas.Contact, error)
	UpcomingBirthdays(ctx context.Context, owner int64, days int) ([]*schemas.Contact, error)
}

type ContactHdl interface {
	ListContacts(c *gin.Context)
	UpcomingBirthdays(c *gin.Context)
	GetContact(c *gin.Context)
	CreateContact(c *gin.Context)
	UpdateContact(c *gin.Context)
	DeleteContact(c *gin.Context)
}

type ContactHandler struct {
	ContactService ContactStore
}

func NewContactHandler(contactService ContactStore) *ContactHandler {
	return &ContactHandler{ContactService: contactService}
}

// ListContacts filters the contacts of the current user by substrings of first name, last name and email.
func (handler *ContactHandler) ListContacts(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	skip, limit, err := utils.ParsePaginationParams(c)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	contacts, err := handler.ContactService.List(c, user.ID, schemas.ContactFilter{
		FirstName: c.Query(utils.FirstNameParamKey),
		LastName:  c.Query(utils.LastNameParamKey),
		Email:     c.Query(utils.EmailParamKey),
		Skip:      skip,
		Limit:     limit,
	})
	if err != nil {
		utils.WriteError(c, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewContactDTOs(contacts), http.StatusOK)
}

func (handler *ContactHandler) UpcomingBirthdays(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	days, err := utils.ParseDaysParam(c)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	contacts, err := handler.ContactService.UpcomingBirthdays(c, user.ID, days)
	if err != nil {
		utils.WriteError(c, err)
		return
	}

	utils.WriteAndLogResponse(c, schemas.NewContactDTOs(contacts), http.StatusOK)
}

func (handler *ContactHandler) GetContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseContactId(c)
	if !ok {
		return
	}

	contact, err := handler.ContactService.Get(c, user.ID, id)
	handler.writeContact(c, contact, err, http.StatusOK)
}

func (handler *ContactHandler) CreateContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	req := utils.SanitizedPayload[schemas.CreateContactRequest](c)

	birthday, err := time.Parse(schemas.DateLayout, req.BirthdayDate)
	if err != nil {
		utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
		return
	}

	contact, err := handler.ContactService.Create(c, user.ID, schemas.NewContact{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		BirthdayDate: birthday,
		Info:         req.Info,
	})
	handler.writeContact(c, contact, err, http.StatusCreated)
}

// UpdateContact applies the fields present in the body and leaves the others untouched.
func (handler *ContactHandler) UpdateContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseContactId(c)
	if !ok {
		return
	}
	req := utils.SanitizedPayload[schemas.UpdateContactRequest](c)

	patch := schemas.ContactPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Info:        req.Info,
	}
	if req.BirthdayDate != nil {
		birthday, err := time.Parse(schemas.DateLayout, *req.BirthdayDate)
		if err != nil {
			utils.WriteAndLogError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}
		patch.BirthdayDate = &birthday
	}

	contact, err := handler.ContactService.Update(c, user.ID, id, patch)
	handler.writeContact(c, contact, err, http.StatusOK)
}

func (handler *ContactHandler) DeleteContact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseContactId(c)
	if !ok {
		return
	}

	contact, err := handler.ContactService.Delete(c, user.ID, id)
	handler.writeContact(c, contact, err, http.StatusOK)
}

func (handler *ContactHandler) writeContact(c *gin.Context, contact *schemas.Contact, err error, status int) {
	if err != nil {
		utils.WriteError(c, err)
		return
	}
	utils.WriteAndLogResponse(c, schemas.NewContactDTO(contact), status)
}
