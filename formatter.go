package campcrawl

import "strings"

// FormatRow renders a campaign as the " & "-separated line consumed by the
// client's download table: type, review, mall, price, point, participation
// time, title, and detail URL in that order.
func FormatRow(c *Campaign) string {
	return strings.Join([]string{
		c.Type,
		c.Review,
		c.Mall,
		c.Price,
		c.Point,
		c.ParticipationTime,
		c.Title,
		c.URL,
	}, " & ")
}

// FormatRows renders campaigns one per line, in the given order.
func FormatRows(campaigns []*Campaign) string {
	if len(campaigns) == 0 {
		return ""
	}

	rows := make([]string, 0, len(campaigns))
	for _, c := range campaigns {
		rows = append(rows, FormatRow(c))
	}

	return strings.Join(rows, "\n")
}
