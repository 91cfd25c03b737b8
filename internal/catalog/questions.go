package catalog

import (
	"github.com/Nexuses/mazars-cybersecurity-assessment/internal/model"
)

// responseOptions is the canonical nine-option answer scale shared by every
// question. Each option's score equals its value parsed as an integer; the
// scoring engine depends on that equivalence.
func responseOptions() []model.Option {
	return []model.Option{
		{Value: "1", Label: "In no case", Score: 1},
		{Value: "2", Label: "In a few cases", Score: 2},
		{Value: "3", Label: "About half cases", Score: 3},
		{Value: "4", Label: "In most cases", Score: 4},
		{Value: "5", Label: "In all cases", Score: 5},
		{Value: "6", Label: "Don't know", Score: 6},
		{Value: "7", Label: "Other", Score: 7},
		{Value: "8", Label: "Not applicable", Score: 8},
		{Value: "9", Label: "Not answered", Score: 9},
	}
}

func question(id, text, category, area, topic string) model.Question {
	return model.Question{
		ID:       id,
		Text:     text,
		Category: category,
		Area:     area,
		Topic:    topic,
		Options:  responseOptions(),
	}
}

// questions returns the full assessment question bank.
func questions() []model.Question {
	return []model.Question{
		question("sg1", "Is there a documented information security strategy approved by senior management?",
			"Security Governance", "Security Strategy", "Strategy Documentation"),
		question("sg2", "Are information security responsibilities assigned to a dedicated function or role?",
			"Security Governance", "Security Organisation", "Roles and Responsibilities"),
		question("sg3", "Is security performance reported to the board on a regular basis?",
			"Security Governance", "Security Organisation", "Management Reporting"),

		question("ir1", "Are information risk assessments performed for critical business environments?",
			"Information Risk Assessment", "Risk Analysis", "Risk Assessment Coverage"),
		question("ir2", "Are identified information risks tracked through to treatment or acceptance?",
			"Information Risk Assessment", "Risk Treatment", "Risk Tracking"),
		question("ir3", "Is a consistent risk classification scheme applied across the organisation?",
			"Information Risk Assessment", "Risk Analysis", "Risk Classification"),

		question("sm1", "Are security policies reviewed and updated at planned intervals?",
			"Security Management", "Policy Management", "Policy Review"),
		question("sm2", "Is compliance with security policies monitored and enforced?",
			"Security Management", "Policy Management", "Policy Compliance"),
		question("sm3", "Are exceptions to security policy formally approved and time-bound?",
			"Security Management", "Policy Management", "Policy Exceptions"),

		question("pm1", "Do employees receive security awareness training on joining and periodically thereafter?",
			"People Management", "Security Awareness", "Awareness Training"),
		question("pm2", "Are background verification checks carried out for staff in sensitive roles?",
			"People Management", "Personnel Security", "Screening"),
		question("pm3", "Is access revoked promptly when staff change role or leave the organisation?",
			"People Management", "Personnel Security", "Leaver Process"),

		question("sa1", "Is access to business applications granted according to documented approval workflows?",
			"System Access", "Access Control", "Access Provisioning"),
		question("sa2", "Is multi-factor authentication required for remote and privileged access?",
			"System Access", "Access Control", "Authentication"),
		question("sa3", "Are privileged accounts inventoried and their use monitored?",
			"System Access", "Privileged Access", "Privileged Account Management"),

		question("ts1", "Are systems protected by centrally managed malware protection?",
			"Technical Security Management", "Malware Protection", "Endpoint Protection"),
		question("ts2", "Are security patches applied within defined timescales based on severity?",
			"Technical Security Management", "Vulnerability Management", "Patch Management"),
		question("ts3", "Are penetration tests performed against internet-facing systems?",
			"Technical Security Management", "Vulnerability Management", "Security Testing"),

		question("tm1", "Is there a documented and tested incident response plan?",
			"Threat and Incident Management", "Incident Response", "Response Planning"),
		question("tm2", "Are security events collected and reviewed to detect potential incidents?",
			"Threat and Incident Management", "Security Monitoring", "Event Analysis"),

		question("bc1", "Are business continuity plans in place for critical environments?",
			"Business Continuity", "Continuity Planning", "Plan Coverage"),
		question("bc2", "Are backups taken, protected and periodically restored as a test?",
			"Business Continuity", "Resilience", "Backup and Restore"),
	}
}
