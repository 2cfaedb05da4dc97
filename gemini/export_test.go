package gemini

// Exported for tests.
var (
	QuestionPrompt   = questionPrompt
	DiscussionPrompt = discussionPrompt
	VotingPrompt     = votingPrompt
	QuestionSchema   = questionSchema
	DiscussionSchema = discussionSchema
	VotingSchema     = votingSchema
)
