package persona

// Reply banks for the elderly "Rajesh" persona: a retired schoolteacher
// who is slow with technology, easily worried, and keeps deferring to
// his son. One bank per strategy; selection is deterministic per session.

var openerReplies = []string{
	"Beta, what is this? I don't understand. Why are you saying this?",
	"What happened? Is there some problem? I'm not understanding what you're saying.",
	"Hello? I'm old person, I don't know about these things. Can you explain simply?",
	"What is the matter? I am confused. Please tell me clearly what is the issue.",
	"I don't understand these technical words. Can you explain to me like a simple person?",
}

var neutralReplies = []string{
	"Thank you for your message. Have a nice day!",
	"Namaste. I think you may have the wrong number, but thank you.",
	"Ok beta, I have noted your message. Thank you.",
}

var confusionReplies = []string{
	"I'm not understanding what you're saying. Can you speak slowly?",
	"Beta, you're using too many English words. I'm simple person from village.",
	"What you are saying is too complicated for me. Can you explain in simple way?",
	"I'm getting more confused. Maybe I should ask my neighbor who knows computers.",
	"I don't know about all these modern things. Why don't you just send someone to my house?",
}

var clarifyReplies = []string{
	"But why is this happening to my account? Nobody told me anything before.",
	"Which company are you calling from? I want to write it down in my diary.",
	"First explain to me slowly, what exactly is the problem with my account?",
	"My hearing is not so good. Tell me once more, what do you want me to do?",
}

var stallReplies = []string{
	"Wait, I need to find my spectacles first. I cannot read anything without them.",
	"Hold on beta, someone is at the door. Tell me again in two minutes.",
	"Let me get my passbook from the cupboard. This house has too many cupboards.",
	"I need to think about this. Can you call me tomorrow? I will ask my family.",
}

var suspicionReplies = []string{
	"You're making me nervous. Let me first call bank customer care to confirm.",
	"Why are you rushing me? This sounds suspicious. My son warned me about fraud calls.",
	"Hold on, I want to verify this first. Give me your employee ID and supervisor number.",
	"My son said never share anything on phone. Are you doing some fraud? Tell me truth.",
}

var sensitiveReplies = []string{
	"OTP means what? I don't get any message. My phone is basic phone.",
	"My son told me never share password with anyone. Are you from my bank really?",
	"I don't see any code. Maybe my phone is not working? What number did you send to?",
	"I don't know about these security codes. Can I just visit the bank tomorrow?",
}

var winddownReplies = []string{
	"Ok ok, no need to be angry. Let me talk to my son first and then I will see.",
	"Achha, I am getting tired now. My son is coming home soon, he will handle this.",
	"Fine beta, I have written everything down. I will go to the bank branch myself.",
}

var closingReplies = []string{
	"My son has come home now, he says he will take care of all this. Thank you, bye.",
	"I am going to the bank branch tomorrow morning with my son. No need to call again.",
	"It is my dinner time now. My family is calling me. We will talk some other day. Bye.",
}

var closedReplies = []string{
	"This number is not in use anymore. Please do not message here.",
}

// elicitation banks, keyed by the artifact type still missing from the
// session. Each line nudges the counterparty to reveal that artifact.
var elicitUPIReplies = []string{
	"My grandson set up some payment app for me. Which UPI ID should I send to exactly?",
	"I have SBI and HDFC both. Tell me the full UPI address again, I will write it down.",
	"Wait, let me get pen and paper. Spell out that payment ID slowly for me.",
}

var elicitPhoneReplies = []string{
	"My phone battery keeps dying. Give me your direct number so I can call you back.",
	"Which number should I call if this gets cut? Tell me slowly, I am writing.",
	"Is there a helpline number? I prefer talking on phone, messages confuse me.",
}

var elicitLinkReplies = []string{
	"The link is not opening on my phone. Can you send it once more?",
	"My screen is cracked, I cannot see the website name. Type the full link again please.",
	"Which website should I open? Send me the address, my neighbor will help me.",
}

var elicitAccountReplies = []string{
	"To which account should the money go? Give me the full account number for my diary.",
	"Bank manager will ask me where I am sending. What is the account number and IFSC?",
	"I will go to the branch and transfer there. Write the account details for me.",
}
