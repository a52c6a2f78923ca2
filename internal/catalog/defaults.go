package catalog

import "github.com/boostbay/boostbay-golang/internal/models"

func ptr(v float64) *float64 { return &v }

// DefaultPackages is the fixed sample set used to bootstrap an empty catalog
// and as the read fallback when the store is unreachable.
func DefaultPackages() []models.Package {
	pkgs := []models.Package{
		{ID: "yt-sub-500", Name: "YouTube 500 Subscribers", Description: "500 real-looking subscribers delivered gradually.", ServiceType: "youtube", ServiceID: "yt-subscribers", Units: 500, Price: 24.99, IsFeatured: true},
		{ID: "yt-sub-1000", Name: "YouTube 1000 Subscribers", Description: "1000 subscribers with drip-feed delivery.", ServiceType: "youtube", ServiceID: "yt-subscribers", Units: 1000, Price: 44.99, DiscountedPrice: ptr(39.99)},
		{ID: "yt-view-5000", Name: "YouTube 5000 Views", Description: "5000 high-retention views.", ServiceType: "youtube", ServiceID: "yt-views", Units: 5000, Price: 19.99},
		{ID: "ig-fol-1000", Name: "Instagram 1000 Followers", Description: "1000 followers, no password required.", ServiceType: "instagram", ServiceID: "ig-followers", Units: 1000, Price: 14.99, IsFeatured: true},
		{ID: "ig-like-2500", Name: "Instagram 2500 Likes", Description: "2500 likes split across recent posts.", ServiceType: "instagram", ServiceID: "ig-likes", Units: 2500, Price: 12.99, DiscountPercentage: 10},
		{ID: "tt-fol-1000", Name: "TikTok 1000 Followers", Description: "1000 followers delivered within 48 hours.", ServiceType: "tiktok", ServiceID: "tt-followers", Units: 1000, Price: 16.99},
		{ID: "tt-view-10000", Name: "TikTok 10000 Views", Description: "10000 views on one video.", ServiceType: "tiktok", ServiceID: "tt-views", Units: 10000, Price: 9.99},
		{ID: "fb-like-1000", Name: "Facebook 1000 Page Likes", Description: "1000 page likes from active profiles.", ServiceType: "facebook", ServiceID: "fb-page-likes", Units: 1000, Price: 18.99},
		{ID: "gg-rev-10", Name: "Google 10 Reviews", Description: "10 five-star reviews with custom text.", ServiceType: "google", ServiceID: "gg-reviews", Units: 10, Price: 49.99, DiscountedPrice: ptr(44.99), IsFeatured: true},
		{ID: "gg-rev-25", Name: "Google 25 Reviews", Description: "25 five-star reviews spread over a month.", ServiceType: "google", ServiceID: "gg-reviews", Units: 25, Price: 99.99},
	}
	for i := range pkgs {
		pkgs[i].IsActive = true
		pkgs[i].EffectivePrice = EffectivePrice(pkgs[i])
	}
	return pkgs
}
