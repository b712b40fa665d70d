package application

import (
	"fmt"
	"strings"

	contentDomain "github.com/afland/duende-publisher/internal/content/domain"
	eventsDomain "github.com/afland/duende-publisher/internal/events/domain"
)

// Blog-wide SEO constants. The call-to-action anchor and destination are
// mandated by the blog's internal-linking strategy and must appear verbatim
// in every post body.
const (
	finderURL   = "https://buscador.afland.es/"
	ctaAnchor   = "todos los conciertos y eventos en nuestro buscador"
	blogPersona = `Eres "Duende", un experto redactor de SEO para el blog "Duende Finder" (afland.es). Tu objetivo es crear el contenido para un post sobre un evento de flamenco.`
	noLinkText  = "No disponible"
	noDescText  = "No se proporcionó una descripción del evento."
)

// buildPrompt assembles the instruction prompt for one event. The output
// format section differs between JSON and delimited mode; everything else is
// shared.
func buildPrompt(event *eventsDomain.Event, forceJSON bool) string {
	var b strings.Builder

	b.WriteString("# CONTEXTO\n")
	b.WriteString(blogPersona)
	b.WriteString("\n\n# INSTRUCCIONES PARA EL POST\n")
	if forceJSON {
		b.WriteString(`Tu única salida debe ser un objeto JSON válido, sin texto introductorio, explicaciones, ni envolturas de markdown. El objeto JSON debe contener estrictamente las siguientes propiedades: "slug", "meta_title", "meta_desc", "post_title", "post_content".`)
	} else {
		fmt.Fprintf(&b, `Tu única salida debe ser texto plano con exactamente cinco secciones separadas por la línea %q. Cada sección empieza con su etiqueta seguida de dos puntos: "slug:", "meta_title:", "meta_desc:", "post_title:", "post_content:". Sin texto introductorio ni explicaciones. El cuerpo del post debe seguir esta estructura: gancho inicial, trasfondo del artista, descripción del lugar, llamada a la acción.`, contentDomain.SectionSeparator)
	}

	b.WriteString("\n\n# DATOS DEL EVENTO\n")
	fmt.Fprintf(&b, "- Nombre: %s\n", event.Name)
	fmt.Fprintf(&b, "- Artista(s): %s\n", event.Artist.DisplayName())
	fmt.Fprintf(&b, "- Fecha: %s\n", eventsDomain.FormatDateLong(event.Date))
	fmt.Fprintf(&b, "- Hora: %s\n", event.Time)
	fmt.Fprintf(&b, "- Lugar: %s, %s\n", event.Venue, event.City)
	fmt.Fprintf(&b, "- URL de la fuente/compra de entradas: %s\n", orDefault(event.AffiliateLink, noLinkText))
	fmt.Fprintf(&b, "- Descripción del evento: %s\n", orDefault(event.Description, noDescText))

	if plan := strings.TrimSpace(event.NightPlan); plan != "" {
		b.WriteString("\n# INFORMACIÓN ADICIONAL PARA ENRIQUECER EL POST\n")
		b.WriteString("Usa la siguiente guía local para enriquecer el post con recomendaciones de la zona.\nContenido Adicional:\n")
		b.WriteString(plan)
		b.WriteString("\n")
	}

	b.WriteString("\n# REGLAS DEL CONTENIDO\n")
	b.WriteString("- **slug:** Crea un slug corto, en minúsculas, sin acentos ni caracteres especiales, optimizado para SEO (4-5 palabras clave).\n")
	b.WriteString("- **meta_title:** Crea un título SEO de menos de 60 caracteres que sea persuasivo y atractivo.\n")
	b.WriteString("- **meta_desc:** Crea una meta descripción de menos de 155 caracteres.\n")
	fmt.Fprintf(&b, "- **post_title:** Crea un título H1 atractivo para el post, usando una estructura como \"Concierto en %s: [Título Atractivo]\".\n", event.City)
	fmt.Fprintf(&b, "- **post_content:** Escribe el cuerpo del post en formato Markdown (300-400 palabras). Trabaja las familias de palabras clave \"%s flamenco\" y \"%s\". Incluye una introducción vibrante, un desarrollo detallado sobre el artista y el evento, y una llamada a la acción clara. El enlace de \"Duende Finder\" (%s) debe incluirse de forma natural en el texto con el ancla \"%s\".\n",
		event.City, event.Artist.DisplayName(), finderURL, ctaAnchor)

	return b.String()
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
