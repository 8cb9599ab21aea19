package ingestion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"notes-repository-be/internal/entity"
	"notes-repository-be/internal/pkg/logger"
	"notes-repository-be/pkg/storage"

	"github.com/google/uuid"
)

var (
	ErrIncomplete       = errors.New("please complete all fields and select an image")
	ErrInvalidImage     = errors.New("file is not a supported image")
	ErrSubjectNotFound  = errors.New("subject not found")
	ErrEmptySubjectName = errors.New("subject name is required")
	ErrPipelineClosed   = errors.New("upload already finished")
)

type SubjectStore interface {
	FindSubject(ctx context.Context, id uuid.UUID) (*entity.Subject, error)
	CreateSubject(ctx context.Context, subject *entity.Subject) error
}

type NoteStore interface {
	CreateNote(ctx context.Context, note *entity.Note) error
}

type TextExtractor interface {
	ExtractText(ctx context.Context, imageURL string) (string, error)
}

type Deps struct {
	Subjects  SubjectStore
	Notes     NoteStore
	Objects   storage.ObjectStore
	Extractor TextExtractor
	Logger    logger.ILogger
	Now       func() time.Time
}

type Submission struct {
	UploaderID  uuid.UUID
	Title       string
	Description string
}

// Observer sees every state change, in order.
type Observer func(from, to State)

// Pipeline drives one upload from subject choice to the inserted note. It is
// single-use: once done or failed, further calls return ErrPipelineClosed.
type Pipeline struct {
	deps Deps

	mu        sync.Mutex
	state     State
	subject   *entity.Subject
	image     *selectedImage
	observers []Observer
	lastErr   error
}

func NewPipeline(deps Deps) *Pipeline {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Pipeline{deps: deps, state: StateIdle}
}

func (p *Pipeline) Observe(o Observer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.observers = append(p.observers, o)
}

func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err is the failure that moved the pipeline to StateError, if any.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

func (p *Pipeline) Subject() *entity.Subject {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.subject
}

func (p *Pipeline) transition(to State) error {
	from := p.state
	if !canTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	p.state = to
	for _, o := range p.observers {
		o(from, to)
	}
	return nil
}

func (p *Pipeline) fail(err error) {
	p.lastErr = err
	_ = p.transition(StateError)
}

// UseSubject selects an existing subject.
func (p *Pipeline) UseSubject(ctx context.Context, id uuid.UUID) (*entity.Subject, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Terminal() {
		return nil, ErrPipelineClosed
	}

	subject, err := p.deps.Subjects.FindSubject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find subject: %w", err)
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}

	return subject, p.selectSubject(subject)
}

// CreateSubject inserts a new subject right away and selects it. Names are
// not required to be unique.
func (p *Pipeline) CreateSubject(ctx context.Context, name, description string, createdBy uuid.UUID) (*entity.Subject, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Terminal() {
		return nil, ErrPipelineClosed
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptySubjectName
	}

	subject := &entity.Subject{
		Id:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedAt:   p.deps.Now(),
	}
	if createdBy != uuid.Nil {
		creator := createdBy
		subject.CreatedBy = &creator
	}

	if err := p.deps.Subjects.CreateSubject(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}

	return subject, p.selectSubject(subject)
}

func (p *Pipeline) selectSubject(subject *entity.Subject) error {
	next := StateSubjectResolved
	if p.state == StateImageSelected {
		// Keep the more advanced state; both choices are now made.
		next = StateImageSelected
	}
	if err := p.transition(next); err != nil {
		return err
	}
	p.subject = subject
	return nil
}

// SelectImage accepts one image file and returns its local preview.
func (p *Pipeline) SelectImage(fileName string, data []byte) (*Preview, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Terminal() {
		return nil, ErrPipelineClosed
	}

	preview, err := BuildPreview(fileName, data)
	if err != nil {
		return nil, err
	}

	if err := p.transition(StateImageSelected); err != nil {
		return nil, err
	}
	p.image = &selectedImage{fileName: fileName, contentType: preview.ContentType, data: data}
	return preview, nil
}

// Submit uploads the image, extracts its text and inserts the note. OCR
// failures never fail the submission; the note is stored with empty text.
func (p *Pipeline) Submit(ctx context.Context, sub Submission) (*entity.Note, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Terminal() {
		return nil, ErrPipelineClosed
	}

	title := strings.TrimSpace(sub.Title)
	switch {
	case p.subject == nil:
		return nil, fmt.Errorf("%w (missing subject)", ErrIncomplete)
	case title == "":
		return nil, fmt.Errorf("%w (missing title)", ErrIncomplete)
	case p.image == nil:
		return nil, fmt.Errorf("%w (missing image)", ErrIncomplete)
	case sub.UploaderID == uuid.Nil:
		return nil, fmt.Errorf("%w (missing uploader)", ErrIncomplete)
	}

	if err := p.transition(StateUploading); err != nil {
		return nil, err
	}

	key := ObjectKey(sub.UploaderID, p.deps.Now(), p.image.fileName)
	if _, err := p.deps.Objects.Put(ctx, key, p.image.contentType, bytes.NewReader(p.image.data)); err != nil {
		err = fmt.Errorf("upload image: %w", err)
		p.fail(err)
		return nil, err
	}
	imageURL := p.deps.Objects.PublicURL(key)

	if err := p.transition(StateExtracting); err != nil {
		return nil, err
	}

	text, err := p.deps.Extractor.ExtractText(ctx, imageURL)
	if err != nil {
		p.deps.Logger.Warn("INGESTION", "Text extraction failed, storing note without text", map[string]interface{}{
			"image_url": imageURL,
			"error":     err.Error(),
		})
		text = ""
	}

	if err := p.transition(StateInserting); err != nil {
		return nil, err
	}

	now := p.deps.Now()
	note := &entity.Note{
		Id:            uuid.New(),
		SubjectId:     p.subject.Id,
		UserId:        sub.UploaderID,
		Title:         title,
		Description:   strings.TrimSpace(sub.Description),
		ImageURL:      imageURL,
		ExtractedText: text,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := p.deps.Notes.CreateNote(ctx, note); err != nil {
		// The uploaded object stays orphaned; objects are never deleted.
		err = fmt.Errorf("insert note: %w", err)
		p.fail(err)
		return nil, err
	}

	if err := p.transition(StateDone); err != nil {
		return nil, err
	}
	return note, nil
}
