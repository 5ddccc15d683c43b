package main

import "github.com/charmbracelet/bubbles/list"

// favoriteItem adapts a saved word to the bubbles list.
type favoriteItem struct {
	word string
}

func (i favoriteItem) FilterValue() string { return i.word }

// Title is the word, shortened so it fits the side pane.
func (i favoriteItem) Title() string {
	if len([]rune(i.word)) > 22 {
		return string([]rune(i.word)[:19]) + "..."
	}
	return i.word
}

func (i favoriteItem) Description() string { return "" }

func favoriteItems(words []string) []list.Item {
	items := make([]list.Item, len(words))
	for i, w := range words {
		items[i] = favoriteItem{word: w}
	}
	return items
}

// selectedFavorite returns the word under the list cursor.
func (m *model) selectedFavorite() (string, bool) {
	item, ok := m.favorites.SelectedItem().(favoriteItem)
	if !ok {
		return "", false
	}
	return item.word, true
}

func newFavoritesList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "★ Favorites"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("favorite", "favorites")
	return l
}
