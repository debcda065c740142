// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package reader

import (
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/library"
)

// DefaultWPM is the playback rate used when neither the document nor the
// caller provides one.
const DefaultWPM = 300

// DefaultSaveDebounce is the quiet window for coalescing progress saves.
const DefaultSaveDebounce = 600 * time.Millisecond

// Phase is the playback state machine's current state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the phase as its name.
func (p Phase) MarshalJSON() ([]byte, error) {
	return []byte(`"` + p.String() + `"`), nil
}

// Options configures a Player.
type Options struct {
	WPM          int
	AutoPace     AutoPace
	SaveDebounce time.Duration
	Clock        Clock
	Sink         Sink
	Logger       *zap.Logger
}

// Player owns one reader's playback state and drives word advancement. All
// mutation happens under its lock; timer callbacks re-check a generation
// token so a stale chain can never advance the cursor after a newer run has
// started.
//
// Persistence is write-through and best effort: progress saves are debounced
// during playback and forced at phase boundaries. A failing store never
// interrupts playback.
type Player struct {
	store  library.DocumentStore
	sink   Sink
	clock  Clock
	logger *zap.Logger
	saver  *Debouncer

	mu         sync.Mutex
	doc        *library.Document
	text       string
	words      []string
	index      int
	phase      Phase
	wpm        int
	pace       AutoPace
	hasStarted bool
	busy       bool

	sessionStartAt    time.Time // zero when no session is open
	sessionStartIndex int

	gen   uint64
	timer Timer
}

// NewPlayer creates a player writing through to store.
func NewPlayer(store library.DocumentStore, opts Options) *Player {
	if opts.WPM <= 0 {
		opts.WPM = DefaultWPM
	}
	if opts.SaveDebounce <= 0 {
		opts.SaveDebounce = DefaultSaveDebounce
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	if opts.Sink == nil {
		opts.Sink = NopSink{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	p := &Player{
		store:  store,
		sink:   opts.Sink,
		clock:  opts.Clock,
		logger: opts.Logger,
		wpm:    opts.WPM,
		pace:   opts.AutoPace,
		phase:  PhaseIdle,
	}
	p.saver = NewDebouncer(opts.Clock, opts.SaveDebounce, p.persist)
	return p
}

// LoadDocument makes doc the active document, ending any open session on the
// previous one first. Playback resumes from the document's saved position.
func (p *Player) LoadDocument(doc *library.Document) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopRunLocked()
	p.doc = doc
	p.text = doc.Text
	p.words = Tokenize(doc.Text)
	p.index = doc.LastIndex
	if p.index > len(p.words) {
		p.index = len(p.words)
	}
	if doc.WPM > 0 {
		p.wpm = doc.WPM
	}
	p.phase = PhaseIdle
	p.hasStarted = false

	if p.index < len(p.words) {
		p.sink.ShowWord(SplitWord(p.words[p.index]))
	} else {
		p.sink.ShowMessage("")
	}
	p.sink.ShowStatus(p.statusLocked())
}

// LoadText replaces the playback content with unsaved free text. The text is
// committed to the library lazily, on the first Play.
func (p *Player) LoadText(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopRunLocked()
	p.doc = nil
	p.text = text
	p.words = Tokenize(text)
	p.index = 0
	p.phase = PhaseIdle
	p.hasStarted = false

	if len(p.words) > 0 {
		p.sink.ShowWord(SplitWord(p.words[0]))
	} else {
		p.sink.ShowMessage(promptMessage)
	}
	p.sink.ShowStatus(p.statusLocked())
}

const promptMessage = "Paste text or import a document"

// SetBusy marks an external import as in flight. Play is rejected while busy
// so playback cannot race the import.
func (p *Player) SetBusy(busy bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy = busy
}

// SetWPM sets the playback rate. Mid-flight changes take effect on the next
// scheduled word; the current delay is never rewritten retroactively.
func (p *Player) SetWPM(wpm int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if wpm > 0 {
		p.wpm = wpm
	}
}

// SetAutoPace replaces the auto-pace settings.
func (p *Player) SetAutoPace(pace AutoPace) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pace = pace
}

// Play starts or resumes playback. It is an idempotent no-op while already
// playing, refuses to race an in-flight import, and with no tokens loaded
// shows a prompt instead of scheduling anything.
func (p *Player) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.busy {
		p.sink.ShowMessage("Loading...")
		return
	}
	if len(p.words) == 0 {
		p.sink.ShowMessage(promptMessage)
		return
	}
	if p.phase == PhasePlaying {
		return
	}

	// First start of this content: auto-pace begins its ramp here.
	if p.pace.Enabled && !p.hasStarted {
		p.wpm = p.pace.StartWPM
		p.pace.BeginRun(p.index)
	}

	p.ensureDocumentLocked()

	p.hasStarted = true
	p.phase = PhasePlaying
	p.beginSessionLocked()
	p.sink.ShowStatus(p.statusLocked())

	// A new run invalidates any outstanding timer chain before scheduling.
	p.cancelTimerLocked()
	p.stepLocked(p.gen)
}

// stepLocked performs one advance of the playback loop: render the word at
// the cursor, move the cursor, then schedule the next step after a delay
// computed from the current (possibly re-paced) rate.
func (p *Player) stepLocked(gen uint64) {
	if gen != p.gen || p.phase != PhasePlaying {
		return
	}

	if p.index >= len(p.words) {
		p.index = len(p.words)
		p.finishLocked()
		return
	}

	p.wpm = p.pace.Rate(p.index, len(p.words), p.wpm)

	word := p.words[p.index]
	p.sink.ShowWord(SplitWord(word))
	p.index++
	p.sink.ShowStatus(p.statusLocked())
	p.saver.Schedule()

	delay := StepDelay(word, p.wpm)
	p.timer = p.clock.AfterFunc(delay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.stepLocked(gen)
	})
}

// StepDelay computes the display duration of word at wpm. Words closing a
// sentence linger half again as long; clause boundaries get a smaller pause.
func StepDelay(word string, wpm int) time.Duration {
	base := 60000.0 / float64(wpm)
	switch {
	case strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?"):
		base *= 1.5
	case strings.HasSuffix(word, ",") || strings.HasSuffix(word, ":") || strings.HasSuffix(word, ";"):
		base *= 1.2
	}
	return time.Duration(base * float64(time.Millisecond))
}

func (p *Player) finishLocked() {
	p.cancelTimerLocked()
	p.endSessionLocked()
	p.phase = PhaseFinished
	p.saveNowLocked()
	p.sink.ShowMessage("Done")
	p.sink.ShowStatus(p.statusLocked())
}

// Pause stops advancement, closes the open session and persists progress
// immediately. Safe to call in any phase.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pauseLocked()
	p.sink.ShowStatus(p.statusLocked())
}

func (p *Player) pauseLocked() {
	p.cancelTimerLocked()
	p.endSessionLocked()
	if p.phase == PhasePlaying {
		p.phase = PhasePaused
	}
	p.saveNowLocked()
}

// Reset returns the cursor to the start of the document: any timer is
// cancelled, any open session closed, and the zero position is persisted
// immediately.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cancelTimerLocked()
	p.endSessionLocked()
	p.index = 0
	p.phase = PhaseIdle
	p.hasStarted = false
	p.saveNowLocked()

	if len(p.words) > 0 {
		p.sink.ShowWord(SplitWord(p.words[0]))
	} else {
		p.sink.ShowMessage("")
	}
	p.sink.ShowStatus(p.statusLocked())
}

// Jump moves the cursor by delta words. Stepping while auto-advancing is
// disallowed, so a jump during playback pauses first.
func (p *Player) Jump(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jumpLocked(delta)
}

func (p *Player) jumpLocked(delta int) {
	if len(p.words) == 0 {
		return
	}
	if p.phase == PhasePlaying {
		p.pauseLocked()
	}

	next := p.index + delta
	if next < 0 {
		next = 0
	}
	if next > len(p.words)-1 {
		next = len(p.words) - 1
	}
	p.index = next
	if p.phase == PhaseFinished {
		p.phase = PhasePaused
	}

	p.sink.ShowWord(SplitWord(p.words[p.index]))
	p.sink.ShowStatus(p.statusLocked())
	p.saver.Schedule()
}

// StepForward advances the cursor one word, pausing playback first.
func (p *Player) StepForward() { p.Jump(1) }

// StepBack moves the cursor one word back, pausing playback first.
func (p *Player) StepBack() { p.Jump(-1) }

// RewindSeconds moves the cursor back by the number of words the current
// rate covers in the given seconds, at least one.
func (p *Player) RewindSeconds(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.words) == 0 {
		return
	}
	back := int(math.Round(float64(p.wpm) / 60.0 * seconds))
	if back < 1 {
		back = 1
	}
	p.jumpLocked(-back)
}

// Status returns the current playback scalars.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

// Document returns the active document, or nil when playing unsaved text
// that has not been started yet.
func (p *Player) Document() *library.Document {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.doc
}

// Close stops any pending timer, ends an open session and flushes the final
// position. The player must not be used afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	p.cancelTimerLocked()
	p.endSessionLocked()
	p.saveNowLocked()
	p.mu.Unlock()
	p.saver.Stop()
}

func (p *Player) statusLocked() Status {
	total := len(p.words)
	percent := 0
	if total > 0 {
		percent = p.index * 100 / total
		if percent > 100 {
			percent = 100
		}
	}
	return Status{
		Phase:   p.phase,
		Index:   p.index,
		Total:   total,
		Percent: percent,
		WPM:     p.wpm,
	}
}

// stopRunLocked tears down playback state before switching content so no
// reading time is dropped and no stale timer chain survives the switch.
func (p *Player) stopRunLocked() {
	p.cancelTimerLocked()
	p.endSessionLocked()
	if p.doc != nil {
		p.saveNowLocked()
	}
}

func (p *Player) cancelTimerLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// ensureDocumentLocked commits unsaved text to the library on first start,
// resolving by fingerprint so identical content re-opens the existing record
// instead of duplicating it.
func (p *Player) ensureDocumentLocked() {
	raw := strings.TrimSpace(p.text)
	if raw == "" {
		return
	}
	if p.doc != nil && strings.TrimSpace(p.doc.Text) == raw {
		return
	}

	id := Fingerprint(raw)
	doc, err := p.store.GetDocument(id)
	if err != nil {
		p.logger.Warn("document lookup failed", zap.Error(err))
	}
	now := p.clock.Now()
	if doc == nil {
		doc = NewDocument(raw, DocumentOptions{Source: "paste", WPM: p.wpm}, now)
	} else {
		doc.Text = raw
		doc.WordCount = len(p.words)
		doc.UpdatedAt = now
	}
	p.doc = doc
	if err := p.store.PutDocument(doc); err != nil {
		p.logger.Warn("document save failed", zap.String("id", doc.ID), zap.Error(err))
	}
}

// beginSessionLocked opens a reading session: counted once per sitting, and
// a no-op if one is already open or no document is active.
func (p *Player) beginSessionLocked() {
	if p.doc == nil || !p.sessionStartAt.IsZero() {
		return
	}
	now := p.clock.Now()
	p.sessionStartAt = now
	p.sessionStartIndex = p.index
	p.doc.Sessions++
	p.doc.LastReadAt = now
	p.saveNowLocked()
}

// endSessionLocked closes the open session, folding the elapsed time into
// the document's totals and appending a history record. No-op when no
// session is open, so redundant calls are safe.
func (p *Player) endSessionLocked() {
	if p.doc == nil || p.sessionStartAt.IsZero() {
		return
	}
	now := p.clock.Now()
	elapsed := now.Sub(p.sessionStartAt)

	p.doc.TotalReadMs += elapsed.Milliseconds()
	p.doc.UpdatedAt = now
	p.doc.LastReadAt = now

	rec := &library.SessionRecord{
		ID:         uuid.NewString(),
		DocumentID: p.doc.ID,
		StartAt:    p.sessionStartAt,
		EndAt:      now,
		StartIndex: p.sessionStartIndex,
		EndIndex:   p.index,
		WPM:        p.wpm,
	}
	p.sessionStartAt = time.Time{}

	if err := p.store.AddSessionRecord(rec); err != nil {
		p.logger.Warn("session record save failed", zap.Error(err))
	}
	p.saveNowLocked()
}

// saveNowLocked persists progress immediately, superseding any debounced
// save still pending.
func (p *Player) saveNowLocked() {
	p.saver.Stop()
	p.persistLocked()
}

// persist is the debounced save entry point; it runs on a timer goroutine.
func (p *Player) persist() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.persistLocked()
}

func (p *Player) persistLocked() {
	if p.doc == nil {
		return
	}
	now := p.clock.Now()
	p.doc.LastIndex = p.index
	p.doc.WordCount = len(p.words)
	p.doc.WPM = p.wpm
	p.doc.UpdatedAt = now
	p.doc.LastReadAt = now
	if strings.TrimSpace(p.doc.Title) == "" {
		p.doc.Title = DeriveTitle(p.doc.Text)
	}
	if err := p.store.PutDocument(p.doc); err != nil {
		p.logger.Warn("progress save failed", zap.String("id", p.doc.ID), zap.Error(err))
	}
}
