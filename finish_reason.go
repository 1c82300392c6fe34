package genstream

// FinishReason indicates why a candidate stopped generating.
type FinishReason string

const (
	FinishReasonUnspecified FinishReason = "FINISH_REASON_UNSPECIFIED"
	FinishReasonStop        FinishReason = "STOP"
	FinishReasonMaxTokens   FinishReason = "MAX_TOKENS"
	FinishReasonSafety      FinishReason = "SAFETY"
	FinishReasonRecitation  FinishReason = "RECITATION"
	FinishReasonOther       FinishReason = "OTHER"
	FinishReasonBlocklist   FinishReason = "BLOCKLIST"
	FinishReasonSPII        FinishReason = "SPII"
	FinishReasonMalformed   FinishReason = "MALFORMED_FUNCTION_CALL"
)

// Blocked reports whether the reason disqualifies the candidate's content
// from text and function-call extraction.
func (r FinishReason) Blocked() bool {
	return r == FinishReasonSafety || r == FinishReasonRecitation
}

// BlockReason indicates why a whole prompt was refused.
type BlockReason string

const (
	BlockReasonUnspecified       BlockReason = "BLOCKED_REASON_UNSPECIFIED"
	BlockReasonSafety            BlockReason = "SAFETY"
	BlockReasonOther             BlockReason = "OTHER"
	BlockReasonBlocklist         BlockReason = "BLOCKLIST"
	BlockReasonProhibitedContent BlockReason = "PROHIBITED_CONTENT"
)
