package constants

type (
	APIStatus   string
	CachePrefix string
	TaskType    string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixVessel        CachePrefix = "VESSEL_"
	CachePrefixMonthlyReport CachePrefix = "REPORT_"
	CachePrefixOwnerVessels  CachePrefix = "OWNER_VESSELS_"

	TaskTypePositionPoll TaskType = "position_poll"
)

// Movement thresholds in knots. A fix at or above the threshold counts as
// underway; below it the vessel is treated as stationary.
const (
	MovingThresholdEngineKnots = 2.0
	MovingThresholdSailKnots   = 1.0
)

// MCA sea-service rules.
const (
	MCAMinimumSeaDayHours    = 4.0
	WatchkeepingBlockHours   = 4.0
	YardServiceCapDays       = 90
	DefaultPollIntervalHours = 0.25
)

// Entry statuses.
const (
	EntryStatusPending   = "pending"
	EntryStatusConfirmed = "confirmed"
	EntryStatusRejected  = "rejected"
)

// Service types a confirmed entry can be credited against.
const (
	ServiceTypeActualSea              = "actual_sea_service"
	ServiceTypeWatchkeeping           = "watchkeeping_service"
	ServiceTypeAdditionalWatchkeeping = "additional_watchkeeping_service"
	ServiceTypeYard                   = "yard_service"
)

// Departments recognised by the accrual rules.
const (
	DepartmentDeck        = "deck"
	DepartmentEngineering = "engineering"
)

// Propulsion types.
const (
	PropulsionEngine = "engine"
	PropulsionSail   = "sail"
)
