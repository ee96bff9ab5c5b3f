package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"taskvault/internal/domain"
	"taskvault/internal/domain/models"
	"taskvault/internal/httputil"
	"taskvault/internal/permission"
)

// FolderService defines the folder operations required by the HTTP
// handlers.
type FolderService interface {
	Create(ctx context.Context, actor permission.Actor, req *models.CreateFolderRequest) (*models.Folder, error)
	Show(ctx context.Context, actor permission.Actor, folderID uuid.UUID) (*models.Folder, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Folder, error)
	Update(ctx context.Context, actor permission.Actor, folderID uuid.UUID, req *models.UpdateFolderRequest) (*models.Folder, error)
	Delete(ctx context.Context, actor permission.Actor, folderID uuid.UUID) error
}

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService FolderService
	logger        *slog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService FolderService, logger *slog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

// CreateFolder creates a folder owned by the caller
// POST /api/v1/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	var req models.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.folderService.Create(r.Context(), actor, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusCreated, folder)
}

// ShowFolder returns a single folder
// GET /api/v1/folders/{folder_id}
func (h *FolderHandler) ShowFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	folderID, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	folder, err := h.folderService.Show(r.Context(), actor, folderID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, folder)
}

// ListFolders returns all folders owned by the caller
// GET /api/v1/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	folders, err := h.folderService.ListForOwner(r.Context(), actor.ID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondData(w, http.StatusOK, folders)
}

// UpdateFolder renames, re-describes, re-parents or toggles a folder
// PUT /api/v1/folders/{folder_id}
func (h *FolderHandler) UpdateFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	folderID, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var req models.UpdateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	folder, err := h.folderService.Update(r.Context(), actor, folderID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondDetail(w, http.StatusOK, folder, "Folder has been successfully updated")
}

// DeleteFolder removes a folder and its whole subtree
// DELETE /api/v1/folders/{folder_id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	actor, ok := getActor(w, r)
	if !ok {
		return
	}

	folderID, err := parseFolderID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.folderService.Delete(r.Context(), actor, folderID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondDetail(w, http.StatusOK, nil, "Folder has been successfully deleted")
}

func parseFolderID(r *http.Request) (uuid.UUID, error) {
	folderID, err := uuid.Parse(r.PathValue("folder_id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: folder_id must be a valid UUID", domain.ErrValidation)
	}
	return folderID, nil
}
