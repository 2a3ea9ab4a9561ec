package marker

import "testing"

func TestResolveCategoryPriority(t *testing.T) {
	allOn := View{LVFilter: true, AwardFilter: true}
	cases := []struct {
		name          string
		flags         Flags
		view          View
		authenticated bool
		want          Category
	}{
		{
			name:          "lv beats everything",
			flags:         Flags{HasLVRating: true, HasAwardTier: true, IsFavorite: true, IsWantToGo: true},
			view:          allOn,
			authenticated: true,
			want:          CategoryLV,
		},
		{
			name:          "lv filter off falls through to award",
			flags:         Flags{HasLVRating: true, HasAwardTier: true, IsFavorite: true},
			view:          View{LVFilter: false, AwardFilter: true},
			authenticated: true,
			want:          CategoryAward,
		},
		{
			name:          "both filters off falls through to favorite",
			flags:         Flags{HasLVRating: true, HasAwardTier: true, IsFavorite: true},
			view:          View{},
			authenticated: true,
			want:          CategoryFavorite,
		},
		{
			name:          "favorite beats want-to-go",
			flags:         Flags{IsFavorite: true, IsWantToGo: true},
			view:          allOn,
			authenticated: true,
			want:          CategoryFavorite,
		},
		{
			name:          "want-to-go as last resort",
			flags:         Flags{IsWantToGo: true},
			view:          allOn,
			authenticated: true,
			want:          CategoryWantToGo,
		},
		{
			name:          "personal lists require authentication",
			flags:         Flags{IsFavorite: true, IsWantToGo: true},
			view:          allOn,
			authenticated: false,
			want:          CategoryNone,
		},
		{
			name:          "nothing set means no marker",
			flags:         Flags{},
			view:          allOn,
			authenticated: true,
			want:          CategoryNone,
		},
		{
			name:          "award flag without filter produces nothing",
			flags:         Flags{HasAwardTier: true},
			view:          View{LVFilter: true},
			authenticated: false,
			want:          CategoryNone,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveCategory(tc.flags, tc.view, tc.authenticated); got != tc.want {
				t.Fatalf("ResolveCategory = %q, want %q", got, tc.want)
			}
		})
	}
}
