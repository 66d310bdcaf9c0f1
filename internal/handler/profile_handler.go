package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"tasktracker/internal/flash"
	"tasktracker/internal/form"
	"tasktracker/internal/model"
	"tasktracker/internal/render"
	"tasktracker/internal/repository"
	"tasktracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

const profilePath = "/profile/"

// MediaStore keeps uploaded profile pictures.
type MediaStore interface {
	Check(fh *multipart.FileHeader) (string, error)
	SaveProfilePicture(c *gin.Context, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, name string) error
}

var (
	_ MediaStore = (*storage.DiskStore)(nil)
	_ MediaStore = (*storage.JetStreamObjectStore)(nil)
)

// profileSubmission is one POST of the profile page: both forms share a
// single request body.
type profileSubmission struct {
	form.UserUpdateInput
	form.ProfileInput
}

type ProfileHandler struct {
	users    repository.UserRepositoryInterface
	profiles repository.ProfileRepositoryInterface
	tasks    repository.TaskRepositoryInterface
	media    MediaStore
	render   render.Renderer
	clock    Clock
	log      *zap.Logger
}

func NewProfileHandler(
	users repository.UserRepositoryInterface,
	profiles repository.ProfileRepositoryInterface,
	tasks repository.TaskRepositoryInterface,
	media MediaStore,
	renderer render.Renderer,
	clock Clock,
	log *zap.Logger,
) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		profiles: profiles,
		tasks:    tasks,
		media:    media,
		render:   renderer,
		clock:    clock,
		log:      log,
	}
}

func profileValues(profile *model.UserProfile) form.ProfileInput {
	in := form.ProfileInput{Bio: profile.Bio, PhoneNumber: profile.PhoneNumber}
	if profile.DateOfBirth != nil {
		in.DateOfBirth = profile.DateOfBirth.Format("2006-01-02")
	}
	return in
}

func (h *ProfileHandler) page(c *gin.Context, status int, user *model.User, profile *model.UserProfile,
	userIn form.UserUpdateInput, userErrs form.Errors, profileIn form.ProfileInput, profileErrs form.Errors) {
	completed, err := h.tasks.CountCompleted(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to count completed tasks", err)
		return
	}

	h.render.Page(c, status, render.PageProfile, gin.H{
		"user":                  newUserResponse(user),
		"user_profile":          newProfileResponse(profile),
		"user_form":             FormState{Fields: form.UserUpdateFields, Values: userIn, Errors: userErrs},
		"profile_form":          FormState{Fields: form.ProfileFields, Values: profileIn, Errors: profileErrs},
		"completed_tasks_count": completed,
	})
}

// Show godoc
// @Summary      Profile page
// @Description  Account and profile forms pre-filled, plus the number of completed tasks. Creates the profile if it is missing.
// @Tags         Profile
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /profile/ [get]
func (h *ProfileHandler) Show(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	profile, err := h.profiles.GetOrCreate(c.Request.Context(), user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to load profile", err)
		return
	}

	userIn := form.UserUpdateInput{FirstName: user.FirstName, LastName: user.LastName, Email: user.Email}
	h.page(c, http.StatusOK, user, profile, userIn, form.Errors{}, profileValues(profile), form.Errors{})
}

// Update godoc
// @Summary      Update account and profile
// @Description  Both forms must be valid; nothing is stored otherwise.
// @Tags         Profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        first_name             formData  string  false  "First name"
// @Param        last_name              formData  string  false  "Last name"
// @Param        email                  formData  string  false  "Email"
// @Param        bio                    formData  string  false  "Bio"
// @Param        date_of_birth          formData  string  false  "YYYY-MM-DD"
// @Param        phone_number           formData  string  false  "Phone number"
// @Param        profile_picture        formData  file    false  "Profile picture"
// @Param        profile_picture-clear  formData  string  false  "Remove the current picture"
// @Success      302
// @Success      200  {object}  map[string]interface{}  "forms with errors"
// @Router       /profile/ [post]
func (h *ProfileHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	profile, err := h.profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		internalError(c, h.log, "Failed to load profile", err)
		return
	}

	var in profileSubmission
	if err := c.ShouldBindWith(&in, binding.Form); err != nil {
		h.log.Debug("profile form rejected", zap.Error(err))
		errs := form.Errors{}
		errs.Add(form.NonFieldErrors, "Invalid request")
		h.page(c, http.StatusBadRequest, user, profile, in.UserUpdateInput, errs, profileValues(profile), form.Errors{})
		return
	}
	profileIn := in.ProfileInput

	userIn, userErrs := form.ValidateUserUpdate(in.UserUpdateInput)
	data, profileErrs := form.ValidateProfile(profileIn, h.clock())

	picture, err := c.FormFile("profile_picture")
	switch {
	case err == nil:
		if _, err := h.media.Check(picture); err != nil {
			profileErrs.Add("profile_picture", pictureError(err))
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		picture = nil
	default:
		profileErrs.Add("profile_picture", "The submitted data was not a file. Check the encoding type on the form.")
		picture = nil
	}

	if userErrs.Any() || profileErrs.Any() {
		h.page(c, http.StatusOK, user, profile, userIn, userErrs, profileIn, profileErrs)
		return
	}

	oldPicture := profile.ProfilePicture
	newPicture := ""
	if picture != nil {
		newPicture, err = h.media.SaveProfilePicture(c, picture)
		if err != nil {
			internalError(c, h.log, "Failed to store profile picture", err)
			return
		}
	}

	updated := *user
	updated.FirstName = userIn.FirstName
	updated.LastName = userIn.LastName
	updated.Email = userIn.Email

	changes := *profile
	changes.Bio = data.Bio
	changes.DateOfBirth = data.DateOfBirth
	changes.PhoneNumber = data.PhoneNumber
	switch {
	case newPicture != "":
		changes.ProfilePicture = newPicture
	case c.PostForm("profile_picture-clear") != "":
		changes.ProfilePicture = ""
	}

	if err := h.users.UpdateAccount(ctx, &updated, &changes); err != nil {
		if newPicture != "" {
			if derr := h.media.Delete(ctx, newPicture); derr != nil {
				h.log.Warn("failed to remove orphaned upload", zap.String("file", newPicture), zap.Error(derr))
			}
		}
		internalError(c, h.log, "Failed to update profile", err)
		return
	}

	if oldPicture != "" && oldPicture != changes.ProfilePicture {
		if err := h.media.Delete(ctx, oldPicture); err != nil {
			h.log.Warn("failed to remove replaced picture", zap.String("file", oldPicture), zap.Error(err))
		}
	}

	flash.Add(c, flash.Success, "Profile updated successfully!")
	c.Redirect(http.StatusFound, profilePath)
}

func pictureError(err error) string {
	switch {
	case errors.Is(err, storage.ErrTooLarge):
		return "The uploaded file is too large."
	case errors.Is(err, storage.ErrNotAnImage):
		return "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
	default:
		return "The uploaded file could not be read."
	}
}
