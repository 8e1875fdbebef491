// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package editor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/parkwatch/internal/geometry"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/models"
)

// Saver accepts a layout for asynchronous storage and returns its pending
// version. Satisfied by *zonestore.Persister.
type Saver interface {
	Enqueue(ctx context.Context, layout models.SiteLayout) (int64, error)
}

// ZoneView is a zone as rendered: geometry plus status and selection.
type ZoneView struct {
	geometry.Zone
	Status        models.Status  `json:"status"`
	StatusColor   string         `json:"status_color"`
	Selected      bool           `json:"selected"`
	LabelPosition geometry.Point `json:"label_position"`
}

// State is the render model returned after every command.
type State struct {
	SessionID          string                             `json:"session_id"`
	SiteID             int64                              `json:"site_id"`
	Mode               string                             `json:"mode"`
	DrawKind           geometry.ShapeKind                 `json:"draw_kind,omitempty"`
	EditingID          string                             `json:"editing_id,omitempty"`
	ActiveHandle       geometry.Handle                    `json:"active_handle,omitempty"`
	Panning            bool                               `json:"panning"`
	ViewBox            string                             `json:"view_box"`
	Viewport           geometry.Extent                    `json:"viewport"`
	Container          geometry.Size                      `json:"container"`
	Space              geometry.Space                     `json:"space"`
	Zones              []ZoneView                         `json:"zones"`
	Handles            map[geometry.Handle]geometry.Point `json:"handles,omitempty"`
	Draft              *geometry.Zone                     `json:"draft,omitempty"`
	PolygonDraft       []geometry.Point                   `json:"polygon_draft,omitempty"`
	CanCompletePolygon bool                               `json:"can_complete_polygon"`
	SavedVersion       int64                              `json:"saved_version"`
}

// Session is one operator's editing session over one site.
type Session struct {
	id      string
	siteID  int64
	user    string
	created time.Time

	mu           sync.Mutex
	editor       *geometry.Editor
	viewport     *geometry.Viewport
	statuses     map[string]models.Status
	lastUsed     time.Time
	savedVersion int64
	now          func() time.Time
}

func newSession(id string, siteID int64, space geometry.Space, container geometry.Size, user string, now func() time.Time, opts ...geometry.EditorOption) *Session {
	ed := geometry.NewEditor(space, opts...)
	t := now()
	return &Session{
		id:       id,
		siteID:   siteID,
		user:     user,
		created:  t,
		editor:   ed,
		viewport: geometry.NewViewport(ed.Space(), container),
		statuses: make(map[string]models.Status),
		lastUsed: t,
		now:      now,
	}
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// SiteID returns the site being edited.
func (s *Session) SiteID() int64 { return s.siteID }

// User returns the operator who opened the session.
func (s *Session) User() string { return s.user }

// CreatedAt returns when the session was opened.
func (s *Session) CreatedAt() time.Time { return s.created }

// LastUsed returns when the session last handled a call.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Load replaces the session's zones with a saved layout and adopts its canvas.
func (s *Session) Load(layout *models.SiteLayout) error {
	zones, err := models.ZonesFromDocuments(layout.Zones)
	if err != nil {
		return fmt.Errorf("failed to decode layout for site %d: %w", layout.SiteID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if space := layout.Space(); space.Valid() {
		s.editor.SetSpace(space)
		s.viewport.SetSpace(space)
	}
	s.editor.Load(zones)
	s.statuses = layout.StatusByZone()
	s.savedVersion = layout.Version
	s.touch()
	return nil
}

// State returns the current render model.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.stateLocked()
}

// Apply runs one command and returns the resulting state. Commands whose
// preconditions do not hold (resizing with nothing selected, completing a
// two-vertex polygon) succeed without changing anything.
func (s *Session) Apply(cmd Command) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()

	err := s.dispatch(cmd)
	metrics.RecordEditorCommand(string(cmd.Type), err)
	return s.stateLocked(), err
}

func (s *Session) dispatch(cmd Command) error {
	switch cmd.Type {
	case CmdPointerDown:
		s.pointerDown(cmd)
	case CmdPointerMove:
		if !s.viewport.ContinuePan(cmd.screen()) {
			s.editor.PointerMove(s.viewport.ScreenToLogical(cmd.screen()))
		}
	case CmdPointerUp:
		s.viewport.EndPan()
		s.editor.PointerUp(s.viewport.ScreenToLogical(cmd.screen()))
	case CmdPointerLeave:
		s.viewport.EndPan()
		s.editor.PointerLeave()
	case CmdWheel:
		switch {
		case cmd.DeltaY < 0:
			s.viewport.ZoomAtPoint(cmd.screen(), geometry.ZoomIn)
		case cmd.DeltaY > 0:
			s.viewport.ZoomAtPoint(cmd.screen(), geometry.ZoomOut)
		}

	case CmdZoomIn:
		s.viewport.ZoomCentered(geometry.ZoomIn)
	case CmdZoomOut:
		s.viewport.ZoomCentered(geometry.ZoomOut)
	case CmdResetView:
		s.viewport.Reset()
	case CmdResizeContainer:
		size := geometry.Size{Width: cmd.Width, Height: cmd.Height}
		if !size.Valid() {
			return fmt.Errorf("%w: container size %gx%g", ErrInvalidCommand, cmd.Width, cmd.Height)
		}
		s.viewport.Resize(size)
	case CmdSetImage:
		space := geometry.Space{Width: cmd.Width, Height: cmd.Height}
		if !space.Valid() {
			return fmt.Errorf("%w: image size %gx%g", ErrInvalidCommand, cmd.Width, cmd.Height)
		}
		s.editor.SetSpace(space)
		s.viewport.SetSpace(space)

	case CmdDrawMode:
		if !s.editor.SetDrawMode(geometry.ShapeKind(cmd.Shape)) {
			return fmt.Errorf("%w: shape %q", ErrInvalidCommand, cmd.Shape)
		}
	case CmdCancelDrawing:
		s.editor.CancelDrawing()
	case CmdCompletePolygon:
		s.editor.CompletePolygon()

	case CmdSelect:
		s.editor.SelectAt(s.viewport.ScreenToLogical(cmd.screen()))
	case CmdEditZone:
		s.editor.StartEditing(cmd.ZoneID)
	case CmdDoneEditing:
		s.editor.DoneEditing()
	case CmdUpdateLabel:
		s.editor.UpdateLabel(cmd.ZoneID, cmd.Label)
	case CmdSetLabelAnchor:
		s.editor.SetLabelAnchor(cmd.ZoneID, s.viewport.ScreenToLogical(cmd.screen()))
	case CmdSetStatus:
		if cmd.Status == "" {
			return fmt.Errorf("%w: missing status", ErrInvalidCommand)
		}
		if _, ok := s.editor.Zone(cmd.ZoneID); ok {
			s.statuses[cmd.ZoneID] = models.ParseStatus(cmd.Status)
		}
	case CmdDeleteZone:
		if s.editor.DeleteZone(cmd.ZoneID) {
			delete(s.statuses, cmd.ZoneID)
		}

	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
	}
	return nil
}

func (s *Session) pointerDown(cmd Command) {
	button := geometry.PointerButton(cmd.Button)
	if button != geometry.ButtonPrimary {
		return
	}
	p := s.viewport.ScreenToLogical(cmd.screen())

	switch s.editor.Mode() {
	case geometry.ModeDrawing:
		s.editor.PointerDown(p)
		return
	case geometry.ModeEditing:
		if id, _ := s.editor.HitTest(p); id == s.editor.EditingID() {
			s.editor.PointerDown(p)
			return
		}
	}
	s.viewport.BeginPan(cmd.screen(), button)
}

// Save hands the current zones to saver and returns the pending version.
func (s *Session) Save(ctx context.Context, saver Saver) (int64, error) {
	s.mu.Lock()
	var layout models.SiteLayout
	s.editor.Save(func(zones []geometry.Zone) {
		space := s.editor.Space()
		layout = models.SiteLayout{
			SiteID:      s.siteID,
			ImageWidth:  space.Width,
			ImageHeight: space.Height,
			Zones:       models.ZonesToDocuments(zones, s.statuses),
			SavedBy:     s.user,
		}
	})
	s.touch()
	s.mu.Unlock()

	version, err := saver.Enqueue(ctx, layout)
	if err != nil {
		return 0, fmt.Errorf("failed to queue layout for site %d: %w", s.siteID, err)
	}

	// Concurrent saves may return out of order.
	s.mu.Lock()
	if version > s.savedVersion {
		s.savedVersion = version
	}
	s.mu.Unlock()
	return version, nil
}

func (s *Session) touch() {
	s.lastUsed = s.now()
}

func (s *Session) stateLocked() State {
	zones := s.editor.Zones()
	editingID := s.editor.EditingID()

	views := make([]ZoneView, 0, len(zones))
	var handles map[geometry.Handle]geometry.Point
	for _, z := range zones {
		st, ok := s.statuses[z.ID]
		if !ok {
			st = models.StatusUnknown
		}
		selected := z.ID == editingID
		if selected {
			handles = z.HandlePositions()
		}
		views = append(views, ZoneView{
			Zone:          z,
			Status:        st,
			StatusColor:   st.Color(),
			Selected:      selected,
			LabelPosition: z.LabelPosition(),
		})
	}

	state := State{
		SessionID:    s.id,
		SiteID:       s.siteID,
		Mode:         s.editor.Mode().String(),
		EditingID:    editingID,
		ActiveHandle: s.editor.ActiveHandle(),
		Panning:      s.viewport.PanState() == geometry.Panning,
		ViewBox:      s.viewport.Extent().ViewBox(),
		Viewport:     s.viewport.Extent(),
		Container:    s.viewport.Container(),
		Space:        s.editor.Space(),
		Zones:        views,
		Handles:      handles,
		PolygonDraft: s.editor.PolygonDraft(),
		SavedVersion: s.savedVersion,
	}
	if s.editor.Mode() == geometry.ModeDrawing {
		state.DrawKind = s.editor.DrawKind()
	}
	if draft, ok := s.editor.Draft(); ok {
		state.Draft = &draft
	}
	state.CanCompletePolygon = state.DrawKind == geometry.ShapePolygon &&
		len(state.PolygonDraft) >= geometry.MinPolygonVertices
	return state
}
