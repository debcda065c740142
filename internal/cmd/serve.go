// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtreilly/arc-reader/internal/config"
	"github.com/mtreilly/arc-reader/internal/library"
	"github.com/mtreilly/arc-reader/internal/reader"
)

func newServeCmd(cfg *config.Config, store library.DocumentStore, logger *zap.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web reader",
		Long:  "Serve a browser-based word-by-word reader over the library.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = cfg.ServeAddr
			}

			// Paragraph indexes are rebuilt from full text, so cache the
			// hot ones per document.
			paragraphs, err := lru.New[string, *reader.ParagraphIndex](32)
			if err != nil {
				return err
			}
			srv := &webServer{
				cfg:        cfg,
				store:      store,
				logger:     logger,
				paragraphs: paragraphs,
			}

			http.HandleFunc("/", srv.handleIndex)
			http.HandleFunc("/api/documents", srv.handleDocuments)
			http.HandleFunc("/api/document/", srv.handleDocument)

			fmt.Printf("Starting arc-reader web server on http://%s\n", addr)
			fmt.Println("Press Ctrl+C to stop")
			logger.Info("web server starting", zap.String("addr", addr))

			return http.ListenAndServe(addr, nil)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to serve on (default from config)")

	return cmd
}

type webServer struct {
	cfg        *config.Config
	store      library.DocumentStore
	logger     *zap.Logger
	paragraphs *lru.Cache[string, *reader.ParagraphIndex]
}

func (s *webServer) paragraphIndex(doc *library.Document) *reader.ParagraphIndex {
	if idx, ok := s.paragraphs.Get(doc.ID); ok {
		return idx
	}
	idx := reader.BuildParagraphs(doc.Text, reader.Tokenize(doc.Text))
	s.paragraphs.Add(doc.ID, idx)
	return idx
}

func (s *webServer) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(strings.Replace(indexTemplate, "{{FOCUS_COLOR}}", s.cfg.FocusColor, -1)))
}

func (s *webServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	docs, err := s.store.ListDocuments(&library.ListOptions{Search: q, Limit: 100})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Listing never ships full text over the wire.
	type docSummary struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		WordCount int    `json:"wordCount"`
		LastIndex int    `json:"lastIndex"`
		WPM       int    `json:"wpm"`
		Progress  int    `json:"progress"`
	}
	out := make([]docSummary, 0, len(docs))
	for _, d := range docs {
		out = append(out, docSummary{
			ID:        d.ID,
			Title:     d.Title,
			WordCount: d.WordCount,
			LastIndex: d.LastIndex,
			WPM:       d.WPM,
			Progress:  d.ProgressPercent(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleDocument routes /api/document/<id>[/frames|/paragraphs|/progress].
func (s *webServer) handleDocument(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/document/")
	id, sub, _ := strings.Cut(rest, "/")

	doc, err := s.store.GetDocument(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if doc == nil {
		http.NotFound(w, r)
		return
	}

	switch sub {
	case "":
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	case "frames":
		s.handleFrames(w, r, doc)
	case "paragraphs":
		s.handleParagraphs(w, r, doc)
	case "progress":
		s.handleProgress(w, r, doc)
	default:
		http.NotFound(w, r)
	}
}

// handleFrames returns focus-split frames for a window of words, so the
// browser can render without re-implementing the split.
func (s *webServer) handleFrames(w http.ResponseWriter, r *http.Request, doc *library.Document) {
	words := reader.Tokenize(doc.Text)

	from, _ := strconv.Atoi(r.URL.Query().Get("from"))
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))
	if from < 0 {
		from = 0
	}
	if from > len(words) {
		from = len(words)
	}
	if count <= 0 || count > 500 {
		count = 500
	}
	end := from + count
	if end > len(words) {
		end = len(words)
	}

	frames := make([]reader.Frame, 0, end-from)
	for _, word := range words[from:end] {
		frames = append(frames, reader.SplitWord(word))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"from":   from,
		"total":  len(words),
		"frames": frames,
	})
}

func (s *webServer) handleParagraphs(w http.ResponseWriter, r *http.Request, doc *library.Document) {
	idx := s.paragraphIndex(doc)

	// ?at=N returns just the paragraph containing that word.
	if at := r.URL.Query().Get("at"); at != "" {
		n, err := strconv.Atoi(at)
		if err != nil {
			http.Error(w, "invalid word index", http.StatusBadRequest)
			return
		}
		pos, para := idx.Locate(n)
		if para == nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"paragraph": pos,
			"start":     para.Start,
			"end":       para.End,
			"text":      para.Text,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(idx.Paragraphs)
}

// handleProgress saves the reading position pushed by the web UI.
func (s *webServer) handleProgress(w http.ResponseWriter, r *http.Request, doc *library.Document) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		LastIndex int `json:"lastIndex"`
		WPM       int `json:"wpm"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	if body.LastIndex < 0 {
		body.LastIndex = 0
	}
	if body.LastIndex > doc.WordCount {
		body.LastIndex = doc.WordCount
	}
	doc.LastIndex = body.LastIndex
	if body.WPM > 0 {
		doc.WPM = body.WPM
	}
	if err := s.store.PutDocument(doc); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.logger.Debug("progress saved",
		zap.String("document", doc.ID),
		zap.Int("lastIndex", doc.LastIndex))
	w.WriteHeader(http.StatusNoContent)
}

var indexTemplate = `<!DOCTYPE html>
<html>
<head>
	<title>Arc Reader</title>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<style>
		* { box-sizing: border-box; margin: 0; padding: 0; }
		body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 800px; margin: 0 auto; padding: 20px; }
		h1 { margin-bottom: 20px; color: #2c3e50; }
		.docs { display: grid; gap: 10px; margin-bottom: 30px; }
		.doc { background: #f8f9fa; border-radius: 8px; padding: 14px 18px; cursor: pointer; }
		.doc:hover { background: #eef2f5; }
		.doc-title { font-weight: 600; }
		.doc-meta { color: #666; font-size: 13px; }
		.stage { display: none; text-align: center; }
		.word { font-size: 42px; font-family: Georgia, serif; height: 80px; display: flex; align-items: center; justify-content: center; white-space: pre; }
		.focus { color: {{FOCUS_COLOR}}; }
		.controls button { font-size: 16px; padding: 8px 16px; margin: 0 4px; border: 1px solid #ccc; border-radius: 6px; background: white; cursor: pointer; }
		.controls button:hover { background: #f0f0f0; }
		.bar { color: #666; margin-top: 16px; font-size: 14px; }
		.msg { color: #666; font-size: 20px; }
	</style>
</head>
<body>
	<h1>Arc Reader</h1>

	<div class="docs" id="docs"><div class="msg">Loading...</div></div>

	<div class="stage" id="stage">
		<div class="word" id="word"></div>
		<div class="controls">
			<button onclick="player.back()">[-10s]</button>
			<button onclick="player.toggle()" id="playBtn">Play</button>
			<button onclick="player.slower()">-25</button>
			<button onclick="player.faster()">+25</button>
			<button onclick="player.close()">Library</button>
		</div>
		<div class="bar" id="bar"></div>
	</div>

	<script>
	var player = {
		doc: null, frames: [], total: 0, index: 0, wpm: 300,
		playing: false, timer: null,

		open: function(doc) {
			this.doc = doc; this.index = doc.lastIndex || 0;
			this.wpm = doc.wpm || 300; this.frames = []; this.playing = false;
			document.getElementById('docs').style.display = 'none';
			document.getElementById('stage').style.display = 'block';
			this.fetchFrames(this.index).then(() => { this.render(); this.status(); });
		},
		fetchFrames: function(from) {
			var self = this;
			return fetch('/api/document/' + this.doc.id + '/frames?from=' + from + '&count=500')
				.then(r => r.json())
				.then(function(data) {
					self.total = data.total;
					for (var i = 0; i < data.frames.length; i++) {
						self.frames[data.from + i] = data.frames[i];
					}
				});
		},
		delay: function(word) {
			var ms = 60000 / this.wpm;
			if (/[.!?]$/.test(word)) return ms * 1.5;
			if (/[,:;]$/.test(word)) return ms * 1.2;
			return ms;
		},
		step: function() {
			if (!this.playing) return;
			if (this.index >= this.total) { this.finish(); return; }
			var f = this.frames[this.index];
			if (!f) {
				var self = this;
				this.fetchFrames(this.index).then(function() { self.step(); });
				return;
			}
			this.render();
			var word = f.left + f.focus + f.right;
			this.index++;
			this.status();
			var self = this;
			this.timer = setTimeout(function() { self.step(); }, this.delay(word));
			if (this.frames[Math.min(this.index + 100, this.total - 1)] === undefined) {
				this.fetchFrames(this.index);
			}
		},
		render: function() {
			var f = this.frames[this.index] || {left:'', focus:'', right:''};
			document.getElementById('word').innerHTML =
				esc(f.left) + '<span class="focus">' + esc(f.focus) + '</span>' + esc(f.right);
		},
		status: function() {
			var pct = this.total ? Math.floor(this.index * 100 / this.total) : 0;
			document.getElementById('bar').textContent =
				this.index + ' / ' + this.total + ' (' + pct + '%) - ' + this.wpm + ' wpm';
		},
		toggle: function() {
			if (this.playing) { this.pause(); } else {
				this.playing = true;
				document.getElementById('playBtn').textContent = 'Pause';
				this.step();
			}
		},
		pause: function() {
			this.playing = false; clearTimeout(this.timer);
			document.getElementById('playBtn').textContent = 'Play';
			this.save();
		},
		finish: function() {
			this.playing = false;
			document.getElementById('word').innerHTML = '<span class="msg">Done</span>';
			document.getElementById('playBtn').textContent = 'Play';
			this.save();
		},
		back: function() {
			var words = Math.max(1, Math.round(this.wpm / 60 * 10));
			this.index = Math.max(0, this.index - words);
			this.render(); this.status();
		},
		faster: function() { this.wpm += 25; this.status(); },
		slower: function() { this.wpm = Math.max(60, this.wpm - 25); this.status(); },
		save: function() {
			fetch('/api/document/' + this.doc.id + '/progress', {
				method: 'POST',
				headers: {'Content-Type': 'application/json'},
				body: JSON.stringify({lastIndex: this.index, wpm: this.wpm})
			});
		},
		close: function() {
			this.pause();
			document.getElementById('stage').style.display = 'none';
			document.getElementById('docs').style.display = 'grid';
			loadDocuments();
		}
	};

	function esc(t) {
		var d = document.createElement('div');
		d.textContent = t;
		return d.innerHTML;
	}

	function loadDocuments() {
		fetch('/api/documents').then(r => r.json()).then(function(docs) {
			var el = document.getElementById('docs');
			if (!docs.length) {
				el.innerHTML = '<div class="msg">Library is empty. Import documents with the CLI.</div>';
				return;
			}
			el.innerHTML = '';
			docs.forEach(function(doc) {
				var div = document.createElement('div');
				div.className = 'doc';
				div.innerHTML = '<div class="doc-title">' + esc(doc.title || 'Untitled') + '</div>' +
					'<div class="doc-meta">' + doc.wordCount + ' words - ' + doc.progress + '% read</div>';
				div.onclick = function() { player.open(doc); };
				el.appendChild(div);
			});
		});
	}

	loadDocuments();
	</script>
</body>
</html>
`
