package views

import (
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var fieldMessages = map[string]string{
	"firstName": "First name is required.",
	"email":     "Email is required.",
	"subject":   "Subject is required.",
	"message":   "Message is required.",
}

func contactPage(d Data) g.Node {
	invalid := map[string]bool{}
	for _, f := range d.FormErrors {
		invalid[f] = true
	}
	f := d.Form
	return g.Group([]g.Node{
		hero("Get in Touch",
			"Tell us about your project. Your message opens in WhatsApp, ready to send to our team.",
		),
		h.Section(h.Class("section"),
			h.Div(h.Class("container narrow"),
				g.If(len(d.FormErrors) > 0,
					h.Ul(h.Class("form-errors"), g.Attr("role", "alert"),
						g.Map(d.FormErrors, func(name string) g.Node {
							return h.Li(g.Attr("data-error", name), g.Text(fieldMessages[name]))
						}),
					),
				),
				g.El("form",
					h.ID("contact-form"),
					h.Method("post"),
					h.Action("/contact/"),
					h.Target("_blank"),
					h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(d.CSRF)),
					h.Div(h.Class("row"),
						field("First Name", "firstName", "text", f.FirstName, true, invalid["firstName"]),
						field("Last Name", "lastName", "text", f.LastName, false, false),
					),
					h.Div(h.Class("row"),
						field("Email", "email", "email", f.Email, true, invalid["email"]),
						field("Phone", "phone", "tel", f.Phone, false, false),
					),
					field("Subject", "subject", "text", f.Subject, true, invalid["subject"]),
					h.Div(h.Class("field"),
						g.El("label", h.For("message"), g.Text("Message")),
						h.Textarea(h.ID("message"), h.Name("message"), h.Rows("5"), h.Required(),
							g.If(invalid["message"], g.Attr("aria-invalid", "true")),
							g.Text(f.Message),
						),
					),
					h.Button(h.Type("submit"), h.Class("button primary"), g.Text("Send via WhatsApp")),
				),
			),
		),
	})
}

func field(label, name, typ, value string, required, invalid bool) g.Node {
	return h.Div(h.Class("field"),
		g.El("label", h.For(name), g.Text(label)),
		h.Input(
			h.ID(name),
			h.Name(name),
			h.Type(typ),
			h.Value(value),
			g.If(required, h.Required()),
			g.If(invalid, g.Attr("aria-invalid", "true")),
		),
	)
}
