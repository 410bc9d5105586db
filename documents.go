package main

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// -----------------------------
// Documents
// -----------------------------

func (a *API) GetDocumentsByEvent(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := RequireEvent(ctx, a.store, eventID); err != nil {
		respondError(c, "list documents", err)
		return
	}
	docs, err := a.store.DocumentsForEvent(ctx, eventID)
	if err != nil {
		respondError(c, "list documents", err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// UploadDocument expects a multipart "file" part and an optional "name".
func (a *API) UploadDocument(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, a.cfg.MaxUploadBytes+1<<20)
	header, err := c.FormFile("file")
	if err != nil {
		jsonError(c, http.StatusBadRequest, "no file uploaded")
		return
	}
	if header.Size > a.cfg.MaxUploadBytes {
		jsonError(c, http.StatusBadRequest, "file too large")
		return
	}

	ctx := c.Request.Context()
	if _, err := RequireEvent(ctx, a.store, eventID); err != nil {
		respondError(c, "upload document", err)
		return
	}

	src, err := header.Open()
	if err != nil {
		respondError(c, "upload document", err)
		return
	}
	defer src.Close()

	locator, err := a.files.Save(header.Filename, src)
	if err != nil {
		respondError(c, "upload document", err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		name = header.Filename
	}
	doc := Document{
		Name:         name,
		Type:         fileType(header.Filename),
		URL:          locator,
		EventID:      eventID,
		UploadedByID: currentPrincipal(c).ID,
	}
	if err := a.store.Create(ctx, &doc); err != nil {
		if rmErr := a.files.Remove(locator); rmErr != nil {
			slog.WarnContext(ctx, "orphaned upload", "url", locator, "error", rmErr)
		}
		respondError(c, "upload document", err)
		return
	}

	view, err := a.store.DocumentView(ctx, doc.ID)
	if err != nil {
		respondError(c, "upload document", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (a *API) DeleteDocument(c *gin.Context) {
	id, ok := idParam(c, "id", "document")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	doc, err := a.store.FindDocument(ctx, id)
	if err != nil {
		respondError(c, "delete document", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionDelete, DocumentTarget(doc)); err != nil {
		respondError(c, "delete document", err)
		return
	}
	if err := a.files.Remove(doc.URL); err != nil {
		respondError(c, "delete document", err)
		return
	}
	if err := a.store.Remove(ctx, doc); err != nil {
		respondError(c, "delete document", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document removed"})
}
