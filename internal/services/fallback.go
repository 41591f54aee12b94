package services

import "math/rand/v2"

var fallbackReplies = []string{
	"I'm sorry, I'm having trouble processing your request right now. Could you try again a little later?",
	"It looks like there is a connection problem. In the meantime, is there something more general I can help you with?",
	"Sorry, I couldn't reach the information you need right now. Is there anything else I can help you with?",
	"I'm running into some technical difficulties. Would you mind rephrasing your question another way?",
	"Oops, something went wrong on my side. Could you give me a bit more context about your question while I try to sort it out?",
}

// FallbackResponder picks an apology reply when the reasoning engine cannot answer.
type FallbackResponder struct {
	replies []string
	intn    func(n int) int
}

func NewFallbackResponder() *FallbackResponder {
	return &FallbackResponder{replies: fallbackReplies, intn: rand.IntN}
}

// Pick returns one of the fixed replies, chosen uniformly at random.
func (f *FallbackResponder) Pick() string {
	return f.replies[f.intn(len(f.replies))]
}
