// Package dedupe provides shared singleflight groups used to collapse
// concurrent identical work. A whole lobby scanning one QR code or
// refreshing the leaderboard at once should cost one generation/query,
// not one per caller.
package dedupe

import "golang.org/x/sync/singleflight"

// QRGroup deduplicates join-link QR rendering keyed by join code.
var QRGroup singleflight.Group

// LeaderboardGroup deduplicates top-player queries keyed by limit.
var LeaderboardGroup singleflight.Group
