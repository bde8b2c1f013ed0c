package sqlite

import (
	"time"

	"offline_sync/internal/domain"
)

func (s *StoreSuite) TestBookmark_SaveRemoveSymmetry() {
	store := NewBookmarkStore(s.db)
	store.now = s.clock()

	s.NoError(store.Save(s.ctx, domain.BookmarkNews, "n1", []byte(`{"id":"n1"}`)))

	ok, err := store.IsBookmarked(s.ctx, domain.BookmarkNews, "n1")
	s.NoError(err)
	s.True(ok)

	s.NoError(store.Remove(s.ctx, domain.BookmarkNews, "n1"))

	ok, err = store.IsBookmarked(s.ctx, domain.BookmarkNews, "n1")
	s.NoError(err)
	s.False(ok)

	list, err := store.List(s.ctx, "")
	s.NoError(err)
	s.Empty(list)
}

func (s *StoreSuite) TestBookmark_SaveIsUpsert() {
	store := NewBookmarkStore(s.db)
	store.now = s.clock()

	s.NoError(store.Save(s.ctx, domain.BookmarkArticle, "a1", []byte(`{"v":1}`)))
	s.NoError(store.Save(s.ctx, domain.BookmarkArticle, "a1", []byte(`{"v":2}`)))

	list, err := store.List(s.ctx, domain.BookmarkArticle)
	s.NoError(err)
	s.Require().Len(list, 1)
	s.Equal("article_a1", list[0].ID)
	s.JSONEq(`{"v":2}`, string(list[0].Data))
}

func (s *StoreSuite) TestBookmark_ListFilterAndOrder() {
	store := NewBookmarkStore(s.db)
	store.now = s.clock()

	s.NoError(store.Save(s.ctx, domain.BookmarkNews, "n1", nil))
	s.now = s.now.Add(time.Minute)
	s.NoError(store.Save(s.ctx, domain.BookmarkArticle, "a1", nil))
	s.now = s.now.Add(time.Minute)
	s.NoError(store.Save(s.ctx, domain.BookmarkNews, "n2", nil))

	all, err := store.List(s.ctx, "")
	s.NoError(err)
	s.Require().Len(all, 3)
	s.Equal("news_n2", all[0].ID)
	s.Equal("article_a1", all[1].ID)
	s.Equal("news_n1", all[2].ID)

	news, err := store.List(s.ctx, domain.BookmarkNews)
	s.NoError(err)
	s.Require().Len(news, 2)
	s.Equal("n2", news[0].EntityID)

	s.NoError(store.Clear(s.ctx))
	all, err = store.List(s.ctx, "")
	s.NoError(err)
	s.Empty(all)
}
