package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// -----------------------------
// Artists
// -----------------------------

// Artists carry no owner: any authenticated user may edit them and their
// event links.

func (a *API) GetArtists(c *gin.Context) {
	artists, err := a.store.ListArtists(c.Request.Context())
	if err != nil {
		respondError(c, "list artists", err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (a *API) GetArtist(c *gin.Context) {
	id, ok := idParam(c, "id", "artist")
	if !ok {
		return
	}
	artist, err := a.store.FindArtist(c.Request.Context(), id)
	if err != nil {
		respondError(c, "get artist", err)
		return
	}
	c.JSON(http.StatusOK, artist)
}

func (a *API) GetArtistsByEvent(c *gin.Context) {
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if _, err := RequireEvent(ctx, a.store, eventID); err != nil {
		respondError(c, "list event artists", err)
		return
	}
	artists, err := a.store.ArtistsForEvent(ctx, eventID)
	if err != nil {
		respondError(c, "list event artists", err)
		return
	}
	c.JSON(http.StatusOK, artists)
}

func (a *API) CreateArtist(c *gin.Context) {
	var body ArtistInput
	if !bindJSON(c, &body) {
		return
	}
	if err := Authorize(currentPrincipal(c), ActionCreate, ArtistTarget()); err != nil {
		respondError(c, "create artist", err)
		return
	}
	if err := required("name", body.Name, "contact_email", body.ContactEmail); err != nil {
		respondError(c, "create artist", err)
		return
	}

	artist := Artist{ContractStatus: ContractPending}
	if err := body.apply(&artist); err != nil {
		respondError(c, "create artist", err)
		return
	}

	ctx := c.Request.Context()
	events, err := ValidateEventIDs(ctx, a.store, body.Events)
	if err != nil {
		respondError(c, "create artist", err)
		return
	}
	if err := a.store.Create(ctx, &artist); err != nil {
		respondError(c, "create artist", err)
		return
	}
	if len(events) > 0 {
		if err := a.store.ReplaceEvents(ctx, &artist, events); err != nil {
			respondError(c, "create artist", err)
			return
		}
	}
	a.respondArtist(c, http.StatusCreated, "create artist", artist.ID)
}

func (a *API) UpdateArtist(c *gin.Context) {
	id, ok := idParam(c, "id", "artist")
	if !ok {
		return
	}
	var body ArtistInput
	if !bindJSON(c, &body) {
		return
	}

	ctx := c.Request.Context()
	artist, err := a.store.FindArtist(ctx, id)
	if err != nil {
		respondError(c, "update artist", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionUpdate, ArtistTarget()); err != nil {
		respondError(c, "update artist", err)
		return
	}
	if err := body.apply(artist); err != nil {
		respondError(c, "update artist", err)
		return
	}
	var events []Event
	if body.Events != nil {
		if events, err = ValidateEventIDs(ctx, a.store, body.Events); err != nil {
			respondError(c, "update artist", err)
			return
		}
	}
	if err := a.store.Save(ctx, artist); err != nil {
		respondError(c, "update artist", err)
		return
	}
	if body.Events != nil {
		if err := a.store.ReplaceEvents(ctx, artist, events); err != nil {
			respondError(c, "update artist", err)
			return
		}
	}
	a.respondArtist(c, http.StatusOK, "update artist", artist.ID)
}

func (a *API) DeleteArtist(c *gin.Context) {
	id, ok := idParam(c, "id", "artist")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	artist, err := a.store.FindArtist(ctx, id)
	if err != nil {
		respondError(c, "delete artist", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionDelete, ArtistTarget()); err != nil {
		respondError(c, "delete artist", err)
		return
	}
	if err := a.store.RemoveWithMembership(ctx, artist); err != nil {
		respondError(c, "delete artist", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "artist removed"})
}

// AddArtistToEvent rejects an event the artist is already linked to.
func (a *API) AddArtistToEvent(c *gin.Context) {
	id, ok := idParam(c, "id", "artist")
	if !ok {
		return
	}
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	artist, err := a.store.FindArtist(ctx, id)
	if err != nil {
		respondError(c, "link artist", err)
		return
	}
	ev, err := RequireEvent(ctx, a.store, eventID)
	if err != nil {
		respondError(c, "link artist", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionLink, ArtistTarget()); err != nil {
		respondError(c, "link artist", err)
		return
	}
	if err := CheckLink(ResourceArtist, artist.Events, ev.ID); err != nil {
		respondError(c, "link artist", err)
		return
	}
	if err := a.store.AppendEvent(ctx, artist, ev); err != nil {
		respondError(c, "link artist", err)
		return
	}
	a.respondArtist(c, http.StatusOK, "link artist", artist.ID)
}

// RemoveArtistFromEvent succeeds whether or not the link existed.
func (a *API) RemoveArtistFromEvent(c *gin.Context) {
	id, ok := idParam(c, "id", "artist")
	if !ok {
		return
	}
	eventID, ok := idParam(c, "eventId", "event")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	artist, err := a.store.FindArtist(ctx, id)
	if err != nil {
		respondError(c, "unlink artist", err)
		return
	}
	if err := Authorize(currentPrincipal(c), ActionUnlink, ArtistTarget()); err != nil {
		respondError(c, "unlink artist", err)
		return
	}
	if err := a.store.RemoveEvent(ctx, artist, eventID); err != nil {
		respondError(c, "unlink artist", err)
		return
	}
	artist.Events = Unlinked(artist.Events, eventID)
	c.JSON(http.StatusOK, artist)
}

func (a *API) respondArtist(c *gin.Context, code int, op string, id uint) {
	artist, err := a.store.FindArtist(c.Request.Context(), id)
	if err != nil {
		respondError(c, op, err)
		return
	}
	c.JSON(code, artist)
}
