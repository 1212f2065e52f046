package domain

import "testing"

func TestItemRating(t *testing.T) {
	item := Item{UpvoteCount: 90, DownvoteCount: 10}
	if got := item.Rating(); got != 0.9 {
		t.Fatalf("Rating() = %v, want 0.9", got)
	}
}

func TestItemRatingNoVotes(t *testing.T) {
	item := Item{}
	if got := item.Rating(); got != 0 {
		t.Fatalf("Rating() = %v, want 0", got)
	}
}

func TestGoodRating(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"at threshold", Item{UpvoteCount: 85, DownvoteCount: 15}, true},
		{"below threshold", Item{UpvoteCount: 84, DownvoteCount: 16}, false},
		{"no votes", Item{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.GoodRating(); got != tt.want {
				t.Errorf("GoodRating() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHighlyRatedRequiresVolume(t *testing.T) {
	goodButLowVolume := Item{UpvoteCount: 40, DownvoteCount: 5}
	if goodButLowVolume.HighlyRated() {
		t.Fatal("expected HighlyRated() false for under 50 total votes")
	}

	goodAndHighVolume := Item{UpvoteCount: 45, DownvoteCount: 5}
	if !goodAndHighVolume.HighlyRated() {
		t.Fatal("expected HighlyRated() true at exactly 50 votes with good rating")
	}
}

func TestPopularRequiresStricterVolume(t *testing.T) {
	highlyRatedNotPopular := Item{UpvoteCount: 85, DownvoteCount: 10}
	if highlyRatedNotPopular.HighlyRated() == false {
		t.Fatal("fixture should be highly rated")
	}
	if highlyRatedNotPopular.Popular() {
		t.Fatal("expected Popular() false under 100 total votes")
	}

	popular := Item{UpvoteCount: 90, DownvoteCount: 10, ReviewCount: 80}
	popular.UpvoteCount = 90
	popular.DownvoteCount = 15
	if !popular.Popular() {
		t.Fatal("expected Popular() true at >=100 votes with good rating")
	}
}

func TestItemPredicateFixtures(t *testing.T) {
	tests := []struct {
		name            string
		item            Item
		wantGood        bool
		wantHighlyRated bool
		wantPopular     bool
	}{
		{"high volume, high rating", Item{UpvoteCount: 900, DownvoteCount: 100}, true, true, true},
		{"minimum volume, high rating", Item{UpvoteCount: 45, DownvoteCount: 5}, true, true, false},
		{"high volume, mediocre rating", Item{UpvoteCount: 600, DownvoteCount: 400}, false, false, false},
		{"no votes at all", Item{}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.GoodRating(); got != tt.wantGood {
				t.Errorf("GoodRating() = %v, want %v", got, tt.wantGood)
			}
			if got := tt.item.HighlyRated(); got != tt.wantHighlyRated {
				t.Errorf("HighlyRated() = %v, want %v", got, tt.wantHighlyRated)
			}
			if got := tt.item.Popular(); got != tt.wantPopular {
				t.Errorf("Popular() = %v, want %v", got, tt.wantPopular)
			}
		})
	}
}
