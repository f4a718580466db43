package booking

import "fmt"

const (
	promptDate     = "Great, let's find a slot. What date works for you? Please use DD.MM.YYYY, e.g. 08.11.2025."
	repromptDate   = "Sorry, I couldn't spot a date in that. Please send it as DD.MM.YYYY, e.g. 08.11.2025."
	promptTime     = "What time should we meet? For example 10:00."
	repromptTime   = "I couldn't read a time there. Please send it like 10:00 or 14:30."
	promptDuration = "How long should the meeting be, in minutes?"
	repromptDur    = "Please send the duration as a number of minutes, e.g. 30."
	promptEmail    = "Almost done. Which email address should the invite go to?"
	repromptEmail  = "That doesn't look like an email address. Please send it like name@example.com."

	replyNotConnected  = "I'm not connected to a calendar yet, so I can't book anything right now. Please try again later."
	replyCreateFailed  = "Something went wrong while booking your meeting. Could you send me your email address again so I can retry?"
	replyAlreadyBooked = "You're all set - your meeting is already booked. Talk to you then!"
)

func replyConflict(date string) string {
	return fmt.Sprintf("That slot on %s is already taken. What other time would work for you?", date)
}

func replyConfirmation(date, timeOfDay string, minutes int, email, link string) string {
	return fmt.Sprintf(
		"All booked! %s at %s, %d minutes. The invite is on its way to %s. Join link: %s",
		date, timeOfDay, minutes, email, link,
	)
}

// Greeting is the outbound SMS sent when a new lead arrives.
func Greeting(botName, firstName string) string {
	if firstName != "" {
		return fmt.Sprintf("Hi %s! This is %s. Happy to set up a meeting with you - just reply \"appointment\" and I'll walk you through it.", firstName, botName)
	}
	return fmt.Sprintf("Hi! This is %s. Happy to set up a meeting with you - just reply \"appointment\" and I'll walk you through it.", botName)
}
