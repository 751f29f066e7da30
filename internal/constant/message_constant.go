package constant

// User-facing messages published as the session's current error. Exactly one
// is visible at a time; the most recent applicable message wins.
const (
	MsgImageLoadFailed      = "There was a problem loading the artwork image."
	MsgMissingAPIKey        = "Gemini API key is not configured."
	MsgKeywordsFailed       = "Failed to generate keywords. You can still write a poem without them."
	MsgRequestLimitReached  = "You have reached the maximum number of requests for this session."
	MsgCoolingDown          = "Please wait a moment before generating another poem."
	MsgNoImageForPoem       = "No image available to generate a poem from."
	MsgPoemFailed           = "Failed to generate poem. Please try again. The content may have been blocked by safety filters."
	MsgEmptyManualPoem      = "Cannot create a poem from empty lines."
	MsgForbiddenThemeFormat = "Theme lines may not contain the word %q."
)
