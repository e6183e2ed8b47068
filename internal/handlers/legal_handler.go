package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type LegalHandler struct{}

func NewLegalHandler() *LegalHandler {
	return &LegalHandler{}
}

func (h *LegalHandler) PrivacyPolicy(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html lang="nb"><head><title>Personvernerklæring - FLUS</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Personvernerklæring</h1>
<p>Sist oppdatert: august 2026</p>
<h2>Hvilke opplysninger vi samler inn</h2>
<p>Vi samler inn e-postadresse, navn, kommune og bruksdata for å levere tjenesten. Meldinger og søknader lagres så lenge kontoen din er aktiv.</p>
<h2>Hvordan vi bruker opplysningene</h2>
<p>Opplysningene brukes kun til å drive FLUS, koble arbeidsgivere og arbeidstakere, og forbedre tjenesten.</p>
<h2>Lagring</h2>
<p>Data lagres kryptert på servere i EU/EØS. Vi selger aldri personopplysninger til tredjeparter.</p>
<h2>Sletting av konto</h2>
<p>Du kan når som helst slette kontoen din og alle tilknyttede data fra innstillingene i appen.</p>
<h2>Kontakt</h2>
<p>Spørsmål om denne erklæringen kan sendes til personvern@flus.no</p>
</body></html>`)
}

func (h *LegalHandler) TermsOfService(c *fiber.Ctx) error {
	return c.Type("html").SendString(`<!DOCTYPE html>
<html lang="nb"><head><title>Brukervilkår - FLUS</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<style>body{font-family:-apple-system,BlinkMacSystemFont,sans-serif;max-width:800px;margin:0 auto;padding:20px;color:#333}h1{color:#1a1a1a}h2{color:#444;margin-top:30px}</style>
</head><body>
<h1>Brukervilkår</h1>
<p>Sist oppdatert: august 2026</p>
<h2>Aksept</h2>
<p>Ved å bruke FLUS godtar du disse vilkårene.</p>
<h2>Oppførsel</h2>
<p>Du forplikter deg til å ikke publisere støtende, ulovlig eller skadelig innhold. Vi forbeholder oss retten til å moderere og fjerne innhold som bryter retningslinjene.</p>
<h2>Oppdrag og betaling</h2>
<p>FLUS formidler kontakt mellom arbeidsgivere og arbeidstakere. Betaling avtales og gjennomføres direkte mellom partene.</p>
<h2>Utestengelse</h2>
<p>Vi kan suspendere eller avslutte kontoer som bryter vilkårene.</p>
<h2>Kontakt</h2>
<p>Spørsmål kan sendes til support@flus.no</p>
</body></html>`)
}
