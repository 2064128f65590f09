package main

import (
	"context"

	"leadership-dashboard/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

var knowledge = []sdk.NL2SQLKnowledgeCreateRequest{
	{Type: "glossary", Key: "Tageseintrag", Value: []string{"eine Zeile in daily_entries: die Aktivitätszahlen eines Nutzers an einem Tag"}},
	{Type: "glossary", Key: "FA", Value: []string{"Finanzanalyse, Spalte daily_entries.fa"}},
	{Type: "glossary", Key: "EH", Value: []string{"Einheiten, Spalte daily_entries.eh"}},
	{Type: "glossary", Key: "TIV", Value: []string{"Informationsveranstaltung für Geschäftspartner, Spalte daily_entries.tiv_invitations"}},
	{Type: "glossary", Key: "TGS", Value: []string{"Grundseminar für neue Geschäftspartner, Spalte daily_entries.tgs_registrations"}},

	{Type: "synonyms", Key: "Name/wer/Berater/Mitarbeiter", Value: []string{"Name des Nutzers"}, AssociateTables: []string{"users,name"}},
	{Type: "synonyms", Key: "Datum/Tag/wann", Value: []string{"Tag des Eintrags"}, AssociateTables: []string{"daily_entries,entry_date"}},
	{Type: "synonyms", Key: "Termine/Neutermine", Value: []string{"neu vereinbarte Termine"}, AssociateTables: []string{"daily_entries,new_appointments"}},
	{Type: "synonyms", Key: "Führungskraft/Leiter/Chef", Value: []string{"direkte Führungskraft"}, AssociateTables: []string{"users,parent_leader_id"}},

	{Type: "logic", Key: "Namen zu Tageseinträgen kommen über daily_entries.user_id = users.id", Value: []string{"JOIN users ON daily_entries.user_id = users.id"}},
	{Type: "logic", Key: "diese Woche heißt von Montag bis heute, dieser Monat vom 1. bis heute", Value: []string{"Zeitraumregel"}},
	{Type: "logic", Key: "das Team einer Führungskraft sind alle Nutzer mit parent_leader_id = users.id der Führungskraft", Value: []string{"direkte Berichtslinie"}},

	{Type: "case_library", Key: "Wer hat heute noch keinen Eintrag", Value: []string{"SELECT u.name FROM users u LEFT JOIN daily_entries d ON d.user_id = u.id AND d.entry_date = CURDATE() WHERE d.id IS NULL"}},
	{Type: "case_library", Key: "Wie viele EH hat jeder diesen Monat", Value: []string{"SELECT u.name, SUM(d.eh) AS eh FROM daily_entries d JOIN users u ON u.id = d.user_id WHERE d.entry_date >= DATE_FORMAT(CURDATE(), '%Y-%m-01') GROUP BY u.name ORDER BY eh DESC"}},
	{Type: "case_library", Key: "Wer hat diese Woche die meisten Empfehlungen", Value: []string{"SELECT u.name, SUM(d.recommendations) AS r FROM daily_entries d JOIN users u ON u.id = d.user_id WHERE d.entry_date >= DATE_SUB(CURDATE(), INTERVAL WEEKDAY(CURDATE()) DAY) GROUP BY u.name ORDER BY r DESC LIMIT 5"}},
}

func initKnowledge(ctx context.Context, client *sdk.RawClient) error {
	for _, k := range knowledge {
		resp, err := client.CreateKnowledge(ctx, &k)
		if err != nil {
			if isDuplicate(err) {
				logger.Info("knowledge: already exists, skipping", "type", k.Type, "key", k.Key)
				continue
			}
			return err
		}
		logger.Info("knowledge: created", "type", k.Type, "key", k.Key, "id", resp.ID)
	}
	return nil
}
