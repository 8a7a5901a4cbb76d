package build

import (
	"log/slog"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	"git.home.luguber.info/inful/postbuilder/internal/config"
	"git.home.luguber.info/inful/postbuilder/internal/metrics"
	"git.home.luguber.info/inful/postbuilder/internal/output"
	"git.home.luguber.info/inful/postbuilder/internal/render"
)

// State is the working set of one build invocation. Stages fill in the
// collections; every other field is set up before the first stage runs.
type State struct {
	Config      config.Config
	Collections *collection.Builder
	Renderer    *render.Renderer
	Writer      *output.Writer
	Recorder    metrics.Recorder
	Logger      *slog.Logger
	Report      *Report

	Published *collection.Collection
	Drafts    *collection.Collection
}

func (st *State) publishedSpec() collection.Spec {
	s := st.Config.Site.Published
	return collection.Spec{
		Name:        "published",
		Root:        st.Config.PublishedRoot(),
		Title:       s.Title,
		Description: s.Description,
		Route:       s.Route,
	}
}

func (st *State) draftSpec() collection.Spec {
	s := st.Config.Site.Draft
	return collection.Spec{
		Name:         "draft",
		Root:         st.Config.DraftRoot(),
		Title:        s.Title,
		Description:  s.Description,
		Route:        s.Route,
		AllowMissing: st.Config.Content.AllowMissingDraft,
	}
}

// collections returns the collections built so far, published first.
func (st *State) collections() []*collection.Collection {
	var out []*collection.Collection
	for _, c := range []*collection.Collection{st.Published, st.Drafts} {
		if c != nil {
			out = append(out, c)
		}
	}
	return out
}
