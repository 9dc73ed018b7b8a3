package chat

import "fmt"

// NotFoundAnswer is the exact sentinel returned whenever the available
// material cannot answer a question. Callers and tests compare against it
// verbatim, so it must never be rephrased.
const NotFoundAnswer = "not found in source material"

const classifierSystemPrompt = `You are a query router for a student notes assistant.
Classify the user's message into exactly one category and reply with ONLY that label:

SMALL_TALK - greetings, thanks, casual conversation with no academic content
DIRECT_NOTES_REQUEST - the user wants a specific notes file sent to them (e.g. "send me os module 2 notes")
NOTES_QUERY - the user asks an academic question that should be answered from the notes
OTHER - anything else

Reply with the label only. No explanation, no punctuation.`

const smallTalkSystemPrompt = `You are a friendly study-buddy chatbot for students.
Keep replies short, warm, and casual. You must NOT answer academic or course
content questions here; if the message asks anything academic, reply exactly:
"` + NotFoundAnswer + `"`

// smallTalkFallback is used when the casual branch cannot reach the model.
const smallTalkFallback = "Hey! I'm here whenever you need your notes."

// scopeReminder answers anything outside the assistant's remit.
const scopeReminder = "I can only help with your course notes: ask me an academic question or request a notes file."

// directNotesAck prefixes a successful direct file lookup.
const directNotesAck = "Here are the notes you asked for."

// groundedPrompt builds the strictly-grounded answer prompt. The rules pin
// the model to the retrieved context and force the sentinel when the
// context has nothing relevant.
func groundedPrompt(question, context string) string {
	return fmt.Sprintf(`Use ONLY the context below to answer the question.

RULES:
1. Do not use any outside knowledge.
2. If the context contains the answer, explain it simply and clearly.
3. If the context contains only part of the answer, state only that part.
4. If the context contains nothing relevant, reply exactly:
   "%s"
5. No invented details. No assumptions. No examples unless present in the notes.
6. Keep the answer clean and student-friendly.

CONTEXT:
%s

QUESTION:
%s

ANSWER:
`, NotFoundAnswer, context, question)
}
