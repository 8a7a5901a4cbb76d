package build

import (
	"context"
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/postbuilder/internal/collection"
	"git.home.luguber.info/inful/postbuilder/internal/logfields"
	"git.home.luguber.info/inful/postbuilder/internal/output"
)

func stageCopyAssets(_ context.Context, st *State) error {
	if err := st.Writer.CopyTree(st.Config.Assets); err != nil {
		return err
	}
	st.Logger.Info("Copied assets", logfields.Path(st.Writer.Root()), logfields.Count(st.Writer.Stats().Files))
	return nil
}

func stageBuildPublished(_ context.Context, st *State) error {
	c, err := st.Collections.Build(st.publishedSpec())
	if err != nil {
		return err
	}
	st.Published = c
	st.Report.AddCollection(c)
	st.Logger.Info("Built collection", logfields.Collection(c.Name), logfields.Count(len(c.Pages)))
	return nil
}

func stageBuildDrafts(_ context.Context, st *State) error {
	c, err := st.Collections.Build(st.draftSpec())
	if err != nil {
		return err
	}
	st.Drafts = c
	st.Report.AddCollection(c)
	st.Logger.Info("Built collection", logfields.Collection(c.Name), logfields.Count(len(c.Pages)))
	return nil
}

// stageCheckSlugs warns about slugs used by more than one page. Routes stay distinct, so the build continues.
func stageCheckSlugs(_ context.Context, st *State) error {
	dups := collection.DuplicateSlugs(st.collections()...)
	if len(dups) == 0 {
		return nil
	}
	st.Report.DuplicateSlugs = dups
	slugs := make([]string, 0, len(dups))
	for slug := range dups {
		slugs = append(slugs, slug)
	}
	slices.Sort(slugs)
	for _, slug := range slugs {
		st.Logger.Warn("Slug shared by several pages", logfields.Slug(slug), slog.Any("routes", dups[slug]))
	}
	return nil
}

func stageWritePages(_ context.Context, st *State) error {
	if st.Published == nil || st.Drafts == nil {
		return ErrCollectionsNotBuilt
	}
	for _, c := range st.collections() {
		for _, p := range c.Pages {
			html, err := st.Renderer.RenderPage(p)
			if err != nil {
				return err
			}
			if err := st.Writer.Write(output.KindPage, p.OutputPath(), html); err != nil {
				return err
			}
			st.Report.AddPage(PageEntry{
				Collection:  c.Name,
				Route:       p.Path,
				Source:      p.SourcePath,
				Date:        p.Matter.Date,
				Fingerprint: p.Fingerprint,
			})
			st.Logger.Debug("Wrote page", logfields.Collection(c.Name), logfields.Route(p.Path))
		}
	}
	return nil
}

func stageWriteListings(_ context.Context, st *State) error {
	if st.Published == nil || st.Drafts == nil {
		return ErrCollectionsNotBuilt
	}
	for _, c := range st.collections() {
		html, err := st.Renderer.RenderCollection(c)
		if err != nil {
			return err
		}
		if err := st.Writer.Write(output.KindListing, c.OutputPath(), html); err != nil {
			return err
		}
		st.Logger.Debug("Wrote listing", logfields.Collection(c.Name), logfields.Route("/"+c.Route))
	}
	return nil
}
