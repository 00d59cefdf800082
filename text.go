package main

// Copy shown by the server-rendered fragments.
var (
	ContactInvalid = `Please fill in your name, a valid email and a message.`

	ContactFailed = `Sorry, there was an error sending your message. Please try again later.`

	ContactSent = `Thank you for your message! I'll get back to you soon.`

	GreetingFallback = `Welcome.`

	AdminDisabled = `Admin login is disabled`

	AdminInvalid = `Invalid credentials`
)
