package constants

// Centralized constants for routes, env keys and response keys.
const (
	// Environment variable keys
	EnvSessionSecret = "SESSION_SECRET"
	EnvCatalogPath   = "WARLOCK_CATALOG"
	EnvDBPath        = "WARLOCK_DB"
	EnvAddress       = "WARLOCK_ADDR"

	// Authorization prefix
	BearerPrefix        = "Bearer "
	HeaderAuthorization = "Authorization"

	ContentTypePNG = "image/png"
)

// Routes used by the backend router
const (
	RouteAPIPrefix   = "/api"
	RouteAuthGuest   = "/auth/guest"
	RouteCatalog     = "/catalog"
	RouteLeaderboard = "/leaderboard"
	RouteProfile     = "/profile"

	RouteGames         = "/games"
	RouteGamesJoin     = "/games/join"
	RouteGameByCode    = "/games/:gameCode"
	RouteGameQR        = "/games/:gameCode/qr"
	RouteGameSelect    = "/games/:gameCode/select"
	RouteGameCharacter = "/games/:gameCode/character"
	RouteGameStart     = "/games/:gameCode/start"
	RouteGameAction    = "/games/:gameCode/action"
	RouteGameReady     = "/games/:gameCode/ready"
	RouteGameLeave     = "/games/:gameCode/leave"
	RouteGameLastRound = "/games/:gameCode/rounds/last"
)

// Common JSON response keys
const (
	JSONKeyError    = "error"
	JSONKeyMessage  = "message"
	JSONKeyCode     = "code"
	JSONKeyAccepted = "accepted"
	JSONKeyReason   = "reason"
)

// Common log field names
const (
	LogFieldGameID = "game_id"
	LogFieldPlayer = "player_uuid"
	LogFieldAddr   = "addr"
	LogFieldRound  = "round"
)

// Error message strings returned by the API
const (
	ErrInvalidGameCode   = "invalid game code"
	ErrGameNotFound      = "game not found"
	ErrInvalidRequest    = "invalid request"
	ErrAuthRequired      = "authentication required"
	ErrPlayerNotInGame   = "player not in this game"
	ErrFailedStoreAction = "failed to store action"
)
